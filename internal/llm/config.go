package llm

import (
	"os"
	"strconv"
)

// Config holds configuration for the completion subsystem.
type Config struct {
	Enabled     bool
	BaseURL     string // OpenAI-compatible endpoint; empty means api.openai.com
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	TimeoutMs   int
}

// DefaultConfig returns a Config with sensible defaults. The completion
// service is disabled by default; the deterministic local generator is used
// until it is switched on.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		BaseURL:     "",
		Model:       "gpt-4o-mini",
		Temperature: 0.8,
		MaxTokens:   512,
		TimeoutMs:   15000,
	}
}

// LoadConfig reads completion configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CADENCE_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CADENCE_LLM_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CADENCE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CADENCE_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("CADENCE_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("CADENCE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	return cfg
}
