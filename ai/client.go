//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_chat_completer.go -package=mocks
package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
	"toni/errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// RequestTimeout bounds every call to the chat completion endpoint.
const RequestTimeout = 30 * time.Second

type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ChatRequest is one system turn plus one multimodal user turn.
type ChatRequest struct {
	Target Target
	System string
	Text   string
	// Images are base64 payloads, attached in order after the text.
	Images     []string
	MaxTokens  int
	JSONObject bool
}

// Client talks to any OpenAI-compatible chat completion endpoint.
type Client struct {
	client openai.Client
}

func NewClient(apiKey string) *Client {
	return &Client{client: openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(RequestTimeout),
		option.WithMaxRetries(0),
	)}
}

// Complete sends the request and returns choices[0].message.content verbatim.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	endpoint, err := url.Parse(req.Target.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}

	completion, err := c.client.Chat.Completions.New(ctx, buildParams(req), atEndpoint(endpoint))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: status %d: %s", errors.ErrUpstreamStatus, apiErr.StatusCode, apiErr.Error())
		}
		return "", fmt.Errorf("calling AI endpoint: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.ErrEmptyCompletion
	}
	return completion.Choices[0].Message.Content, nil
}

// atEndpoint posts to the resolved URL as is instead of a path under the
// SDK base URL, since BACKEND_AI_ENDPOINT is a complete address.
func atEndpoint(endpoint *url.URL) option.RequestOption {
	return option.WithMiddleware(func(r *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		r.URL = endpoint
		r.Host = endpoint.Host
		return next(r)
	})
}

func buildParams(req ChatRequest) openai.ChatCompletionNewParams {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, 1+len(req.Images))
	parts = append(parts, openai.TextContentPart(req.Text))
	for _, img := range req.Images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:image/jpeg;base64," + img,
		}))
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(req.Target.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(parts),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSONObject {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	return params
}
