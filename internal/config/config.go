// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (FRONTDESK_* runtime override)
//  2. Config file (~/.frontdesk/config.yaml, or ./config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - Knowledge: path to the group knowledge document
//   - LLM: OpenAI-compatible endpoint (LM Studio), model, sampling
//   - Chat: history window sent to generation
//   - Server: listen address and timeouts
//   - Log: level, format, optional rotated file output
//
// Error Handling: sentinel errors checkable with errors.Is(), wrapped
// with context via fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingKnowledgePath indicates no knowledge document was configured.
	ErrMissingKnowledgePath = errors.New("missing knowledge path")

	// ErrInvalidBaseURL indicates the LLM base URL is empty or malformed.
	ErrInvalidBaseURL = errors.New("invalid LLM base URL")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidTimeout indicates the generation timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid generation timeout")

	// ErrInvalidHistoryWindow indicates the history window is out of range.
	ErrInvalidHistoryWindow = errors.New("invalid history window")

	// ErrInvalidRateLimit indicates the rate limit settings are out of range.
	ErrInvalidRateLimit = errors.New("invalid rate limit")
)

const (
	// DefaultMaxTokens bounds the generated reply length.
	DefaultMaxTokens = 300

	// DefaultTemperature favors grounded answers over creative ones.
	DefaultTemperature float32 = 0.5

	// DefaultHistoryWindow is the number of recent user/assistant
	// exchanges kept in the prompt sent to generation. Older exchanges
	// are dropped from the prompt, not from the session transcript.
	DefaultHistoryWindow = 10

	// MaxHistoryWindow is the absolute cap to protect the backend's
	// context window.
	MaxHistoryWindow = 200

	// DefaultGenerateTimeout bounds a single backend round trip.
	DefaultGenerateTimeout = 60 * time.Second
)

// Config stores application configuration.
// SECURITY: the API key is masked in String(); never log the raw struct.
type Config struct {
	// Knowledge document
	KnowledgePath string `mapstructure:"knowledge_path"`

	// LLM backend (OpenAI-compatible, e.g. LM Studio)
	LLMBaseURL  string  `mapstructure:"llm_base_url"`
	LLMAPIKey   string  `mapstructure:"llm_api_key"` // SENSITIVE: masked in String()
	ModelName   string  `mapstructure:"model_name"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	// TranscribeModel names the speech-to-text model on the same
	// endpoint. Empty disables the voice route.
	TranscribeModel string `mapstructure:"transcribe_model"`

	// Generation timeout in seconds.
	GenerateTimeoutSecs int `mapstructure:"generate_timeout_secs"`

	// Rate limiting toward the backend (requests/sec sustained, burst).
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	// Conversation history window (exchanges, not turns).
	HistoryWindow int `mapstructure:"history_window"`

	// HTTP server
	Addr string `mapstructure:"addr"`

	// Logging
	LogLevel string `mapstructure:"log_level"` // "debug", "info", "warn", "error"
	LogJSON  bool   `mapstructure:"log_json"`
	LogFile  string `mapstructure:"log_file"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".frontdesk"))
	}
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("FRONTDESK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults + env apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("knowledge_path", "data/knowledge.json")

	v.SetDefault("llm_base_url", "http://localhost:1234/v1")
	v.SetDefault("llm_api_key", "not-needed") // local LM Studio ignores the key
	v.SetDefault("model_name", "mistral")
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("transcribe_model", "whisper-1")

	v.SetDefault("generate_timeout_secs", int(DefaultGenerateTimeout/time.Second))
	v.SetDefault("rate_limit", 10.0)
	v.SetDefault("rate_burst", 30)

	v.SetDefault("history_window", DefaultHistoryWindow)

	v.SetDefault("addr", "127.0.0.1:3400")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("log_file", "")
}

// GenerateTimeout returns the generation timeout as a duration.
func (c *Config) GenerateTimeout() time.Duration {
	return time.Duration(c.GenerateTimeoutSecs) * time.Second
}

// Level maps the configured log level string to a slog.Level.
// Unknown values fall back to info.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String implements fmt.Stringer with the API key masked.
func (c *Config) String() string {
	key := "(unset)"
	if c.LLMAPIKey != "" {
		key = "***"
	}
	return fmt.Sprintf("Config{knowledge=%s llm=%s model=%s key=%s temp=%.2f max_tokens=%d window=%d addr=%s}",
		c.KnowledgePath, c.LLMBaseURL, c.ModelName, key, c.Temperature, c.MaxTokens, c.HistoryWindow, c.Addr)
}
