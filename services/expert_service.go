package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"toni/ai"
	"toni/domain"
	"toni/images"
	"toni/observability"
	"toni/prompts"

	"github.com/samber/lo"
)

const expertMaxTokens = 1500

type IExpertService interface {
	Respond(ctx context.Context, req RespondRequest) (domain.ExpertReply, error)
}

type RespondRequest struct {
	UserText      string
	SecretaryText string
	Image         images.Image
	ExpertName    string
	Burst         []images.Image
	Override      ai.Override
}

type ExpertService struct {
	log       *slog.Logger
	completer ai.ChatCompleter
	defaults  ai.Defaults
}

func NewExpertService(log *slog.Logger, completer ai.ChatCompleter, defaults ai.Defaults) *ExpertService {
	return &ExpertService{log: log, completer: completer, defaults: defaults}
}

// Respond forwards the user's question and images to the chosen expert and
// returns its answer untouched.
func (s *ExpertService) Respond(ctx context.Context, req RespondRequest) (domain.ExpertReply, error) {
	target, err := ai.Resolve(req.Override, s.defaults, ai.RoleExpert)
	if err != nil {
		return domain.ExpertReply{}, err
	}

	chat := ai.ChatRequest{
		Target:    target,
		System:    prompts.ExpertSystemPrompt(req.ExpertName),
		Text:      expertUserPrompt(req.SecretaryText, req.UserText, len(req.Burst)),
		Images:    append([]string{req.Image.Base64}, lo.Map(req.Burst, func(img images.Image, _ int) string { return img.Base64 })...),
		MaxTokens: expertMaxTokens,
	}

	start := time.Now()
	content, err := s.completer.Complete(context.WithoutCancel(ctx), chat)
	observability.ObserveUpstream(domain.RequestExpert, start, err)
	if err != nil {
		s.log.Error("Expert call failed", "expert", req.ExpertName, "endpoint", target.Endpoint, "model", target.Model, "error", err)
		return domain.ExpertReply{}, fmt.Errorf("expert call: %w", err)
	}
	return domain.ExpertReply{Reply: content}, nil
}

func expertUserPrompt(secretary, user string, burst int) string {
	count := ""
	if burst > 0 {
		count = fmt.Sprintf("（共%d张连拍图像）", burst+1)
	}
	return fmt.Sprintf("你的秘书刚才对用户说：\"%s\"。请承接这句话，基于这张高清图片%s，回答用户的完整问题：\"%s\"。", secretary, count, user)
}
