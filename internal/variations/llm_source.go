package variations

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/danielwaldman/cadence/internal/llm"
)

const systemPrompt = "You are a social media content expert."

const userPromptTemplate = `Given the idea: %q, generate %d creative, repurposed content variations for different platforms and tones. Return ONLY a JSON array of %d strings, no explanation.`

// LLMSource generates variations through a completion client.
type LLMSource struct {
	client llm.Client
	logger *zap.Logger
}

// NewLLMSource creates a Source backed by a completion client.
func NewLLMSource(client llm.Client, logger *zap.Logger) *LLMSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMSource{client: client, logger: logger}
}

func (s *LLMSource) Generate(ctx context.Context, idea string) ([]string, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   fmt.Sprintf(userPromptTemplate, idea, Count, Count),
	})
	if err != nil {
		return nil, &GenerationError{Reason: err.Error()}
	}

	vars, err := llm.ExtractStringArray(resp.Text)
	if err != nil {
		s.logger.Warn("unparseable variation output",
			zap.String("model", resp.Model),
			zap.String("raw", resp.Text),
		)
		return nil, &GenerationError{Reason: "unparseable output", Raw: resp.Text}
	}

	if err := validate(vars); err != nil {
		s.logger.Warn("malformed variation output",
			zap.String("model", resp.Model),
			zap.Error(err),
			zap.String("raw", resp.Text),
		)
		return nil, &GenerationError{Reason: err.Error(), Raw: resp.Text}
	}

	return vars, nil
}
