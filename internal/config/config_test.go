package config

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// validConfig returns a config that passes Validate().
func validConfig() *Config {
	return &Config{
		KnowledgePath:       "data/knowledge.json",
		LLMBaseURL:          "http://localhost:1234/v1",
		ModelName:           "mistral",
		Temperature:         0.5,
		MaxTokens:           300,
		GenerateTimeoutSecs: 60,
		RateLimit:           10,
		RateBurst:           30,
		HistoryWindow:       10,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"nil knowledge path", func(c *Config) { c.KnowledgePath = "" }, ErrMissingKnowledgePath},
		{"empty base URL", func(c *Config) { c.LLMBaseURL = "" }, ErrInvalidBaseURL},
		{"relative base URL", func(c *Config) { c.LLMBaseURL = "localhost:1234" }, ErrInvalidBaseURL},
		{"empty model", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }, ErrInvalidTemperature},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, ErrInvalidTemperature},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }, ErrInvalidMaxTokens},
		{"zero timeout", func(c *Config) { c.GenerateTimeoutSecs = 0 }, ErrInvalidTimeout},
		{"zero window", func(c *Config) { c.HistoryWindow = 0 }, ErrInvalidHistoryWindow},
		{"window too large", func(c *Config) { c.HistoryWindow = MaxHistoryWindow + 1 }, ErrInvalidHistoryWindow},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }, ErrInvalidRateLimit},
		{"zero burst", func(c *Config) { c.RateBurst = 0 }, ErrInvalidRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNilConfig(t *testing.T) {
	var c *Config
	if !errors.Is(c.Validate(), ErrConfigNil) {
		t.Error("nil config should return ErrConfigNil")
	}
}

func TestGenerateTimeout(t *testing.T) {
	c := &Config{GenerateTimeoutSecs: 45}
	if got := c.GenerateTimeout(); got != 45*time.Second {
		t.Errorf("GenerateTimeout() = %v, want 45s", got)
	}
}

func TestLevelMapping(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		c := &Config{LogLevel: tt.in}
		if got := c.Level(); got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStringMasksAPIKey(t *testing.T) {
	c := validConfig()
	c.LLMAPIKey = "super-secret"
	if s := c.String(); strings.Contains(s, "super-secret") {
		t.Errorf("String() leaked API key: %s", s)
	}
}
