package config

import (
	"fmt"
	"net/url"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.KnowledgePath == "" {
		return fmt.Errorf("%w: knowledge_path cannot be empty", ErrMissingKnowledgePath)
	}

	if c.LLMBaseURL == "" {
		return fmt.Errorf("%w: llm_base_url cannot be empty", ErrInvalidBaseURL)
	}
	u, err := url.Parse(c.LLMBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidBaseURL, c.LLMBaseURL)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	// 0.0 (deterministic) to 2.0 (maximum creativity)
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("%w: must be between 0.0 and 2.0, got %.2f", ErrInvalidTemperature, c.Temperature)
	}

	if c.MaxTokens < 1 || c.MaxTokens > 32768 {
		return fmt.Errorf("%w: must be between 1 and 32,768, got %d", ErrInvalidMaxTokens, c.MaxTokens)
	}

	if c.GenerateTimeoutSecs < 1 || c.GenerateTimeoutSecs > 600 {
		return fmt.Errorf("%w: must be between 1 and 600 seconds, got %d", ErrInvalidTimeout, c.GenerateTimeoutSecs)
	}

	if c.HistoryWindow < 1 || c.HistoryWindow > MaxHistoryWindow {
		return fmt.Errorf("%w: must be between 1 and %d exchanges, got %d",
			ErrInvalidHistoryWindow, MaxHistoryWindow, c.HistoryWindow)
	}

	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: rate_limit must be positive, got %g", ErrInvalidRateLimit, c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("%w: rate_burst must be at least 1, got %d", ErrInvalidRateLimit, c.RateBurst)
	}

	return nil
}
