package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
	"toni/ai"
	"toni/domain"
	"toni/domain/expert"
	"toni/images"
	"toni/observability"
	"toni/prompts"

	"github.com/samber/lo"
)

const (
	secretaryMaxTokens = 500
	// FallbackReply is used whenever the model gives no usable reply.
	FallbackReply = "收到您的请求，我正在处理中。"
)

type ISecretaryService interface {
	Classify(ctx context.Context, req ClassifyRequest) (domain.ClassificationResult, error)
}

type ClassifyRequest struct {
	Text     string
	Image    *images.Image
	Persona  string
	Override ai.Override
}

type SecretaryService struct {
	log       *slog.Logger
	completer ai.ChatCompleter
	defaults  ai.Defaults
}

func NewSecretaryService(log *slog.Logger, completer ai.ChatCompleter, defaults ai.Defaults) *SecretaryService {
	return &SecretaryService{log: log, completer: completer, defaults: defaults}
}

// secretaryOutput is what the model is asked to produce. Every field is
// loosely typed since the model may not follow the format.
type secretaryOutput struct {
	Intent       any `json:"intent"`
	Reply        any `json:"reply"`
	BurstCount   any `json:"burst_count"`
	CameraAction any `json:"camera_action"`
}

// Classify asks the secretary model which expert should handle the input.
// Upstream failures are returned; malformed model output is not.
func (s *SecretaryService) Classify(ctx context.Context, req ClassifyRequest) (domain.ClassificationResult, error) {
	target, err := ai.Resolve(req.Override, s.defaults, ai.RoleSecretary)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	chat := ai.ChatRequest{
		Target:     target,
		System:     prompts.SecretarySystemPrompt(req.Persona),
		Text:       "用户输入: " + req.Text,
		MaxTokens:  secretaryMaxTokens,
		JSONObject: true,
	}
	if req.Image != nil {
		chat.Images = []string{req.Image.Base64}
	}

	start := time.Now()
	content, err := s.completer.Complete(context.WithoutCancel(ctx), chat)
	observability.ObserveUpstream(domain.RequestSecretary, start, err)
	if err != nil {
		s.log.Error("Secretary call failed", "endpoint", target.Endpoint, "model", target.Model, "error", err)
		return domain.ClassificationResult{}, fmt.Errorf("secretary call: %w", err)
	}

	var out secretaryOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		s.log.Warn("Secretary returned malformed JSON, using fallback", "error", err)
		observability.ClassifierFallbacks.Inc()
		out = secretaryOutput{Intent: expert.DefaultName, Reply: FallbackReply}
	}

	result := interpret(out)
	observability.Classifications.WithLabelValues(result.ExpertName, string(result.CameraDirective)).Inc()
	return result, nil
}

// interpret turns raw model output into a canonical result.
func interpret(out secretaryOutput) domain.ClassificationResult {
	intent, _ := out.Intent.(string)
	e := expert.Resolve(intent)

	camera := expert.DefaultCamera(e.Name)
	if action, ok := out.CameraAction.(string); ok {
		if c, ok := domain.ParseCameraDirective(action); ok {
			camera = c
		}
	}

	reply, _ := out.Reply.(string)
	if reply == "" {
		reply = FallbackReply
	}

	return domain.ClassificationResult{
		ExpertName:      e.Name,
		ExpertID:        e.ID,
		Reply:           reply,
		CameraDirective: camera,
		BurstCount:      lo.Clamp(parseBurstCount(out.BurstCount), 0, domain.MaxBurstCount),
	}
}

// parseBurstCount reads a leading integer from numbers and numeric strings.
// Anything else counts as zero.
func parseBurstCount(v any) int {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		// clamp before converting so huge values don't overflow
		return int(math.Trunc(math.Max(math.Min(n, math.MaxInt32), math.MinInt32)))
	case string:
		return leadingInt(n)
	default:
		return 0
	}
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for i, r := range s {
		if (r == '-' || r == '+') && i == 0 {
			end = 1
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		if len(s[:end]) > 1 {
			// digits overflowed int
			if s[0] == '-' {
				return math.MinInt32
			}
			return math.MaxInt32
		}
		return 0
	}
	return n
}
