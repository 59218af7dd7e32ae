package cmd

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/dmcneil/frontdesk/internal/brand"
	"github.com/dmcneil/frontdesk/internal/chat"
	"github.com/dmcneil/frontdesk/internal/config"
	"github.com/dmcneil/frontdesk/internal/knowledge"
	"github.com/dmcneil/frontdesk/internal/llm"
	"github.com/dmcneil/frontdesk/internal/log"
	"github.com/dmcneil/frontdesk/internal/transcribe"
)

// buildLogger creates the process logger from configuration.
func buildLogger(cfg *config.Config) log.Logger {
	return log.New(log.Config{
		Level: cfg.Level(),
		JSON:  cfg.LogJSON,
		File:  cfg.LogFile,
	})
}

// buildEngine wires the knowledge base, brand resolver, generation
// gateway, and chat engine from configuration. A missing or malformed
// knowledge document is fatal; nothing useful can run without it.
func buildEngine(cfg *config.Config, logger log.Logger) (*chat.Engine, error) {
	base, err := knowledge.Load(cfg.KnowledgePath)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge document %q: %w", cfg.KnowledgePath, err)
	}
	logger.Info("knowledge document loaded",
		"path", cfg.KnowledgePath,
		"organization", base.Organization,
		"companies", base.Len())

	client, err := llm.NewOpenAI(llm.OpenAIConfig{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.ModelName,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.GenerateTimeout(),
		Limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		Logger:      logger.With("component", "llm"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating generation gateway: %w", err)
	}

	engine, err := chat.New(chat.Config{
		Base:          base,
		Resolver:      brand.NewResolver(base.Vocabulary),
		Client:        client,
		Logger:        logger.With("component", "chat"),
		HistoryWindow: cfg.HistoryWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat engine: %w", err)
	}
	return engine, nil
}

// buildTranscriber creates the speech-to-text client, or nil when the
// transcribe model is not configured.
func buildTranscriber(cfg *config.Config, logger log.Logger) (transcribe.Transcriber, error) {
	if cfg.TranscribeModel == "" {
		logger.Info("voice input disabled, no transcribe model configured")
		return nil, nil
	}
	tr, err := transcribe.NewOpenAI(transcribe.OpenAIConfig{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.TranscribeModel,
		Timeout: cfg.GenerateTimeout(),
		Logger:  logger.With("component", "transcribe"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating transcriber: %w", err)
	}
	return tr, nil
}
