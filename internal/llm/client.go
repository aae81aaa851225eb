// Package llm wraps a single OpenAI-compatible chat-completion call behind a
// small interface, plus the response-shape recovery needed to turn free-form
// model text into structured values.
package llm

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// GenerateRequest holds the parameters for a completion call.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses the configured default
	MaxTokens    *int     // nil uses the configured default
}

// GenerateResponse holds the raw result of a completion call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client provides access to a language model for text generation.
type Client interface {
	// Generate sends a prompt and returns the raw text response.
	// Failures are terminal; there is no automatic retry.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// openAIClient implements Client over any OpenAI-compatible chat API.
type openAIClient struct {
	cfg      Config
	api      openai.Client
	observer Observer
}

// NewOpenAIClient creates a Client that talks to the configured endpoint.
func NewOpenAIClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIClient{
		cfg:      cfg,
		api:      openai.NewClient(opts...),
		observer: observer,
	}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	temp := c.cfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := c.cfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		Temperature:         openai.Float(temp),
		MaxCompletionTokens: openai.Int(int64(maxTok)),
	})

	latency := time.Since(start).Milliseconds()
	if err != nil {
		c.observer.OnCallComplete(CallEvent{
			Model:     c.cfg.Model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: errorCode(ctx, err),
		})
		switch {
		case ctx.Err() != nil:
			return nil, ErrTimeout
		case isConnectionError(err):
			return nil, ErrUnavailable
		default:
			return nil, err
		}
	}

	if len(resp.Choices) == 0 {
		c.observer.OnCallComplete(CallEvent{
			Model:     c.cfg.Model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: "EMPTY_RESPONSE",
		})
		return nil, ErrInvalidOutput
	}

	c.observer.OnCallComplete(CallEvent{
		Model:     resp.Model,
		LatencyMs: latency,
		Success:   true,
	})
	return &GenerateResponse{
		Text:      resp.Choices[0].Message.Content,
		Model:     resp.Model,
		LatencyMs: latency,
	}, nil
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return "TIMEOUT"
	case isConnectionError(err):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
