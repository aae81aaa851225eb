// Package variations turns a free-text content idea into a fixed set of
// repurposed variations, either through a language model or through a
// deterministic local generator.
package variations

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Count is the fixed number of variations produced per idea. Downstream
// rendering and export assume exactly this many; anything else is a failure
// even if the completion service answered 200.
const Count = 5

// ErrGenerationFailed indicates the idea could not be expanded into the
// required number of variations.
var ErrGenerationFailed = errors.New("variation generation failed")

// ErrEmptyIdea indicates a blank idea was submitted.
var ErrEmptyIdea = errors.New("idea must not be empty")

// GenerationError wraps ErrGenerationFailed with the raw model output for
// diagnostics. The raw payload is logged, never shown to the user.
type GenerationError struct {
	Reason string
	Raw    string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrGenerationFailed, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return ErrGenerationFailed
}

// Source produces variations for a submitted idea.
type Source interface {
	// Generate returns exactly Count distinct non-empty variations, or an
	// error wrapping ErrGenerationFailed. Failure is terminal for the
	// submission; the caller resubmits explicitly.
	Generate(ctx context.Context, idea string) ([]string, error)
}

// validate enforces the exactly-Count contract shared by all sources.
func validate(vars []string) error {
	if len(vars) != Count {
		return fmt.Errorf("got %d variations, want %d", len(vars), Count)
	}
	seen := make(map[string]bool, Count)
	for i, v := range vars {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("variation %d is empty", i)
		}
		if seen[v] {
			return fmt.Errorf("variation %d is a duplicate", i)
		}
		seen[v] = true
	}
	return nil
}
