// Package transcribe converts spoken audio to text through an
// OpenAI-compatible transcription endpoint (Whisper-style).
//
// The chat engine never sees audio: the HTTP layer transcribes first
// and feeds the resulting text through the normal handle path. A
// failed transcription maps to the engine's retry prompt.
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/dmcneil/frontdesk/internal/log"
)

var (
	// ErrNoAudio indicates the request carried no audio data.
	ErrNoAudio = errors.New("no audio provided")

	// ErrUnusable indicates the audio was present but could not be
	// transcribed (malformed data, backend failure, empty transcript).
	ErrUnusable = errors.New("audio could not be transcribed")
)

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// OpenAIConfig configures the transcription client.
type OpenAIConfig struct {
	// BaseURL points at an OpenAI-compatible endpoint serving
	// /audio/transcriptions.
	BaseURL string

	APIKey string

	// Model names the speech-to-text model, e.g. "whisper-1".
	Model string

	// Timeout bounds one transcription round trip. Zero uses 60s.
	Timeout time.Duration

	Logger log.Logger
}

// OpenAI transcribes through the chat-completion backend's audio
// endpoint. Safe for concurrent use.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  log.Logger
}

// NewOpenAI creates the transcription client.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("model is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &OpenAI{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
		logger:  cfg.Logger,
	}, nil
}

// Transcribe converts audio to text. Absent or empty audio fails with
// ErrNoAudio before any network call; every other failure wraps
// ErrUnusable.
func (o *OpenAI) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if audio == nil {
		return "", ErrNoAudio
	}

	data, err := io.ReadAll(audio)
	if err != nil {
		return "", fmt.Errorf("%w: reading audio: %v", ErrUnusable, err)
	}
	if len(data) == 0 {
		return "", ErrNoAudio
	}
	if filename == "" {
		filename = "audio.wav"
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: filename,
		Reader:   bytes.NewReader(data),
	})
	if err != nil {
		o.logger.Warn("transcription failed", "error", err, "bytes", len(data))
		return "", fmt.Errorf("%w: %v", ErrUnusable, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrUnusable)
	}

	o.logger.Debug("transcription completed",
		"bytes", len(data),
		"text_len", len(text),
		"duration", time.Since(start))
	return text, nil
}
