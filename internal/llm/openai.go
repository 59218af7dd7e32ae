package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/dmcneil/frontdesk/internal/log"
)

// OpenAIConfig contains all required parameters for the gateway.
type OpenAIConfig struct {
	// BaseURL points at an OpenAI-compatible endpoint, e.g. a local
	// LM Studio server ("http://localhost:1234/v1").
	BaseURL string

	// APIKey is sent as the bearer token. Local servers ignore it but
	// the client requires a value.
	APIKey string

	// Model names the loaded model on the backend.
	Model string

	// MaxTokens bounds the generated reply length.
	MaxTokens int

	// Temperature is the sampling temperature. Kept low to favor
	// grounded answers.
	Temperature float32

	// Timeout bounds a single backend round trip.
	Timeout time.Duration

	// Limiter optionally rate-limits calls toward the backend.
	// Nil uses a default of 10 req/s with a burst of 30.
	Limiter *rate.Limiter

	Logger log.Logger
}

// validate checks if all required parameters are present.
func (cfg OpenAIConfig) validate() error {
	if cfg.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if cfg.Model == "" {
		return errors.New("model is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// OpenAI is the production gateway to an OpenAI-compatible
// chat-completion backend.
//
// All configuration is captured immutably at construction time; the
// gateway is safe for concurrent use. Failed calls are never retried:
// one failed generation yields one degraded turn upstream.
type OpenAI struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	limiter     *rate.Limiter
	logger      log.Logger
}

// NewOpenAI creates the gateway from configuration.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 300
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 30)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &OpenAI{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		timeout:     timeout,
		limiter:     limiter,
		logger:      cfg.Logger,
	}, nil
}

// Generate sends the message sequence to the backend and returns the
// reply text. Errors wrap the package sentinels.
func (o *OpenAI) Generate(ctx context.Context, messages []Message) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrBusy, err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", o.mapError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrEmptyReply)
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: blank choice content", ErrEmptyReply)
	}

	o.logger.Debug("generation completed",
		"model", o.model,
		"messages", len(messages),
		"reply_len", len(reply),
		"duration", time.Since(start))
	return reply, nil
}

// mapError converts client errors to the package sentinels.
func (o *OpenAI) mapError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		o.logger.Warn("generation timed out", "model", o.model, "timeout", o.timeout)
		return fmt.Errorf("%w after %s", ErrTimeout, o.timeout)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		o.logger.Warn("backend returned error status",
			"status", apiErr.HTTPStatusCode, "message", apiErr.Message)
		return fmt.Errorf("%w: backend status %d", ErrUnavailable, apiErr.HTTPStatusCode)
	}

	o.logger.Warn("generation request failed", "error", err)
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
