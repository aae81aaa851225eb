package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractStringArray extracts a JSON array of strings from raw model output.
// It first attempts a strict parse of the whole (fence-stripped) text; if
// that fails it falls back to the first balanced [ ... ] block found in the
// text. Models reliably wrap arrays in prose or code fences despite being
// told not to.
func ExtractStringArray(raw string) ([]string, error) {
	cleaned := strings.TrimSpace(stripCodeFences(raw))

	var result []string
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		return result, nil
	}

	block := extractArrayBlock(cleaned)
	if block == "" {
		return nil, fmt.Errorf("%w: no JSON array found in response", ErrInvalidOutput)
	}
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return result, nil
}

// stripCodeFences removes markdown code fences (```json ... ``` or ``` ... ```).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}

// extractArrayBlock finds the first balanced [ ... ] block in the text,
// respecting string literals and escapes.
func extractArrayBlock(s string) string {
	start := strings.IndexByte(s, '[')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
