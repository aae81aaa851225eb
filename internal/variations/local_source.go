package variations

import (
	"context"
	"fmt"
	"strings"
)

// repurposings are the deterministic variation templates used when no
// completion service is configured.
var repurposings = [Count]string{
	"%s (for Instagram)",
	"%s (for Twitter)",
	"%s (for LinkedIn)",
	"%s (in a fun tone)",
	"%s (in a professional tone)",
}

// LocalSource generates variations deterministically, without any network
// call. Output for a given idea is stable across invocations.
type LocalSource struct{}

// NewLocalSource creates the deterministic fallback Source.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

func (*LocalSource) Generate(_ context.Context, idea string) ([]string, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	vars := make([]string, Count)
	for i, tmpl := range repurposings {
		vars[i] = fmt.Sprintf(tmpl, idea)
	}
	return vars, nil
}
