package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"toni/ai"
	"toni/domain"
	"toni/domain/expert"
	"toni/errors"
	"toni/images"
	"toni/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testDefaults = ai.Defaults{
	BaseURL:        "https://models.local",
	SecretaryModel: "gpt-4o-mini",
	ExpertModel:    "gpt-4o",
}

func newSecretary(t *testing.T, content string, err error) (*SecretaryService, *ai.ChatRequest) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockChatCompleter(ctrl)
	var sent ai.ChatRequest
	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r ai.ChatRequest) (string, error) {
			sent = r
			return content, err
		})
	return NewSecretaryService(logs.GetLoggerFromLevel(slog.LevelDebug), completer, testDefaults), &sent
}

func TestSecretaryService_Classify(t *testing.T) {
	ctx := context.Background()

	t.Run("should build a JSON request with the rendered persona prompt", func(t *testing.T) {
		req := require.New(t)
		svc, sent := newSecretary(t, `{"intent":"chef","reply":"好的","burst_count":0,"camera_action":"normal"}`, nil)

		result, err := svc.Classify(ctx, ClassifyRequest{
			Text:    "冰箱里这些能做什么菜",
			Image:   &images.Image{Base64: "AAAA"},
			Persona: "cold",
		})
		req.NoError(err)
		req.Equal("chef", result.ExpertName)
		req.Equal(expert.IDForName("chef"), result.ExpertID)
		req.Equal("好的", result.Reply)

		req.True(sent.JSONObject)
		req.Equal(500, sent.MaxTokens)
		req.Equal("用户输入: 冰箱里这些能做什么菜", sent.Text)
		req.Equal([]string{"AAAA"}, sent.Images)
		req.Equal("gpt-4o-mini", sent.Target.Model)
		req.Equal("https://models.local/v1/chat/completions", sent.Target.Endpoint)
		req.Contains(sent.System, "System")
	})

	t.Run("should send no image when none is given", func(t *testing.T) {
		req := require.New(t)
		svc, sent := newSecretary(t, `{"intent":"tutor","reply":"嗯"}`, nil)

		_, err := svc.Classify(ctx, ClassifyRequest{Text: "hi"})
		req.NoError(err)
		req.Empty(sent.Images)
	})

	t.Run("should honor per-call overrides", func(t *testing.T) {
		req := require.New(t)
		svc, sent := newSecretary(t, `{}`, nil)

		_, err := svc.Classify(ctx, ClassifyRequest{
			Text:     "hi",
			Override: ai.Override{ModelAPIURL: "http://edge:9000/v1", ModelCode: "qwen-vl"},
		})
		req.NoError(err)
		req.Equal("http://edge:9000/v1/chat/completions", sent.Target.Endpoint)
		req.Equal("qwen-vl", sent.Target.Model)
	})

	t.Run("should fall back on malformed JSON", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newSecretary(t, "I think this is about cooking", nil)

		result, err := svc.Classify(ctx, ClassifyRequest{Text: "hi"})
		req.NoError(err)
		req.Equal(expert.DefaultName, result.ExpertName)
		req.Equal(expert.DefaultID, result.ExpertID)
		req.Equal(FallbackReply, result.Reply)
		req.Equal(domain.CameraNormal, result.CameraDirective)
		req.Equal(0, result.BurstCount)
	})

	t.Run("should use the expert's default framing when camera_action is missing", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newSecretary(t, `{"intent":"travel","reply":"…","burst_count":0}`, nil)

		result, err := svc.Classify(ctx, ClassifyRequest{Text: "这是哪里"})
		req.NoError(err)
		req.Equal(domain.CameraWide, result.CameraDirective)
	})

	t.Run("should let an explicit camera_action win over the expert default", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newSecretary(t, `{"intent":"tutor","reply":"…","camera_action":"wide","burst_count":0}`, nil)

		result, err := svc.Classify(ctx, ClassifyRequest{Text: "看看整体情况"})
		req.NoError(err)
		req.Equal(domain.CameraWide, result.CameraDirective)
	})

	t.Run("should keep wide framing chosen for a trigger phrase", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newSecretary(t, `{"intent":"general_engineer","reply":"我看看","camera_action":"wide"}`, nil)

		result, err := svc.Classify(ctx, ClassifyRequest{Text: "看看整体情况"})
		req.NoError(err)
		req.Equal(domain.CameraWide, result.CameraDirective)
	})

	t.Run("should surface upstream failures", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newSecretary(t, "", fmt.Errorf("%w: status 502", errors.ErrUpstreamStatus))

		_, err := svc.Classify(ctx, ClassifyRequest{Text: "hi"})
		req.ErrorIs(err, errors.ErrUpstreamStatus)
	})

	t.Run("should fail without a resolvable endpoint", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		completer := mocks.NewMockChatCompleter(ctrl)
		svc := NewSecretaryService(logs.GetLoggerFromLevel(slog.LevelDebug), completer, ai.Defaults{})

		_, err := svc.Classify(ctx, ClassifyRequest{Text: "hi"})
		req.ErrorIs(err, errors.ErrEndpointNotConfigured)
	})
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		description string
		out         secretaryOutput
		wantName    string
		wantCamera  domain.CameraDirective
		wantBurst   int
		wantReply   string
	}{
		{"should map an unknown intent to the default expert", secretaryOutput{Intent: "astrologer", Reply: "ok"}, expert.DefaultName, domain.CameraNormal, 0, "ok"},
		{"should map a non-string intent to the default expert", secretaryOutput{Intent: float64(18)}, expert.DefaultName, domain.CameraNormal, 0, FallbackReply},
		{"should clamp a large burst count", secretaryOutput{Intent: "writer", BurstCount: float64(15)}, "writer", domain.CameraNormal, 9, FallbackReply},
		{"should clamp a negative burst count", secretaryOutput{Intent: "writer", BurstCount: float64(-3)}, "writer", domain.CameraNormal, 0, FallbackReply},
		{"should truncate a fractional burst count", secretaryOutput{Intent: "writer", BurstCount: 3.9}, "writer", domain.CameraNormal, 3, FallbackReply},
		{"should parse a numeric string burst count", secretaryOutput{Intent: "writer", BurstCount: "4 pages"}, "writer", domain.CameraNormal, 4, FallbackReply},
		{"should clamp an enormous numeric string", secretaryOutput{Intent: "writer", BurstCount: "99999999999999999999999"}, "writer", domain.CameraNormal, 9, FallbackReply},
		{"should ignore a non-numeric burst count", secretaryOutput{Intent: "writer", BurstCount: "many"}, "writer", domain.CameraNormal, 0, FallbackReply},
		{"should ignore a boolean burst count", secretaryOutput{Intent: "writer", BurstCount: true}, "writer", domain.CameraNormal, 0, FallbackReply},
		{"should ignore an unknown camera action", secretaryOutput{Intent: "detective", CameraAction: "zoom"}, "detective", domain.CameraWide, 0, FallbackReply},
		{"should ignore a differently cased camera action", secretaryOutput{Intent: "chef", CameraAction: "WIDE"}, "chef", domain.CameraNormal, 0, FallbackReply},
		{"should replace an empty reply", secretaryOutput{Intent: "chef", Reply: ""}, "chef", domain.CameraNormal, 0, FallbackReply},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			got := interpret(tt.out)
			req.Equal(tt.wantName, got.ExpertName)
			req.Equal(expert.IDForName(got.ExpertName), got.ExpertID)
			req.Equal(tt.wantCamera, got.CameraDirective)
			req.Equal(tt.wantBurst, got.BurstCount)
			req.Equal(tt.wantReply, got.Reply)
		})
	}
}
