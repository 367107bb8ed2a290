package services

import (
	"context"
	"log/slog"
	"testing"
	"toni/ai"
	"toni/errors"
	"toni/images"
	"toni/mocks"
	"toni/prompts"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestExpertService_Respond(t *testing.T) {
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should attach only the primary image without a burst", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		completer := mocks.NewMockChatCompleter(ctrl)
		svc := NewExpertService(log, completer, testDefaults)

		completer.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r ai.ChatRequest) (string, error) {
				req.Equal([]string{"PRIMARY"}, r.Images)
				req.False(r.JSONObject)
				req.Equal(1500, r.MaxTokens)
				req.Equal("gpt-4o", r.Target.Model)
				req.Equal(prompts.ExpertSystemPrompt("chef"), r.System)
				req.Equal(`你的秘书刚才对用户说："马上帮你看看"。请承接这句话，基于这张高清图片，回答用户的完整问题："这个怎么做"。`, r.Text)
				return "先把鸡蛋打散。", nil
			})

		reply, err := svc.Respond(ctx, RespondRequest{
			UserText:      "这个怎么做",
			SecretaryText: "马上帮你看看",
			Image:         images.Image{Base64: "PRIMARY"},
			ExpertName:    "chef",
		})
		req.NoError(err)
		req.Equal("先把鸡蛋打散。", reply.Reply)
	})

	t.Run("should attach the burst after the primary image in input order", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		completer := mocks.NewMockChatCompleter(ctrl)
		svc := NewExpertService(log, completer, testDefaults)

		completer.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r ai.ChatRequest) (string, error) {
				req.Equal([]string{"P", "B1", "B2", "B3"}, r.Images)
				req.Contains(r.Text, "（共4张连拍图像）")
				return "ok", nil
			})

		_, err := svc.Respond(ctx, RespondRequest{
			UserText:   "帮我总结这几页",
			Image:      images.Image{Base64: "P"},
			Burst:      []images.Image{{Base64: "B1"}, {Base64: "B2"}, {Base64: "B3"}},
			ExpertName: "tutor",
		})
		req.NoError(err)
	})

	t.Run("should use the default expert prompt for unknown experts", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		completer := mocks.NewMockChatCompleter(ctrl)
		svc := NewExpertService(log, completer, testDefaults)

		completer.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r ai.ChatRequest) (string, error) {
				req.Equal(prompts.ExpertSystemPrompt("general_engineer"), r.System)
				return "ok", nil
			})

		_, err := svc.Respond(ctx, RespondRequest{UserText: "?", Image: images.Image{Base64: "P"}, ExpertName: "astrologer"})
		req.NoError(err)
	})

	t.Run("should surface upstream failures", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		completer := mocks.NewMockChatCompleter(ctrl)
		svc := NewExpertService(log, completer, testDefaults)

		completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.ErrEmptyCompletion)

		_, err := svc.Respond(ctx, RespondRequest{UserText: "?", Image: images.Image{Base64: "P"}})
		req.ErrorIs(err, errors.ErrEmptyCompletion)
	})

	t.Run("should fail without a resolvable endpoint", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		svc := NewExpertService(log, mocks.NewMockChatCompleter(ctrl), ai.Defaults{})

		_, err := svc.Respond(ctx, RespondRequest{UserText: "?", Image: images.Image{Base64: "P"}})
		req.ErrorIs(err, errors.ErrEndpointNotConfigured)
	})
}
