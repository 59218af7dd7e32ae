// Package chat implements the session context engine, the heart of
// frontdesk.
//
// For each utterance the engine looks up or creates the session,
// seeds it exactly once with a brand-routed grounding prompt, sends
// the windowed history to the generation gateway, and appends the
// exchange to the transcript. Generation failures degrade to a
// textual reply; a conversation never crashes on a backend error.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmcneil/frontdesk/internal/brand"
	"github.com/dmcneil/frontdesk/internal/knowledge"
	"github.com/dmcneil/frontdesk/internal/llm"
	"github.com/dmcneil/frontdesk/internal/log"
	"github.com/dmcneil/frontdesk/internal/prompt"
	"github.com/dmcneil/frontdesk/internal/session"
)

const (
	// RetryPrompt is returned for blank utterances (typically a failed
	// transcription upstream). Session state is left untouched.
	RetryPrompt = "I didn't catch that. Could you repeat your question?"

	// defaultWindow is the fallback history window in exchanges.
	defaultWindow = 10
)

// Config contains all required parameters for the engine.
type Config struct {
	Base     *knowledge.Base
	Resolver *brand.Resolver
	Client   llm.Client
	Logger   log.Logger

	// HistoryWindow is the number of recent exchanges kept in the
	// prompt sent to generation. Zero uses the default.
	HistoryWindow int
}

// validate checks if all required parameters are present.
func (cfg Config) validate() error {
	if cfg.Base == nil {
		return errors.New("knowledge base is required")
	}
	if cfg.Resolver == nil {
		return errors.New("brand resolver is required")
	}
	if cfg.Client == nil {
		return errors.New("generation client is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// Reply is the outcome of one handled utterance.
type Reply struct {
	// SessionID echoes the caller's id, or carries the generated one
	// when the caller supplied none.
	SessionID string

	// Text is the assistant reply. Never empty: failures produce a
	// degraded reply instead.
	Text string

	// Degraded is true when Text is a fallback for a generation
	// failure rather than model output.
	Degraded bool
}

// Engine owns all session states and orchestrates brand routing,
// prompt composition, and generation.
//
// Operations on a single session are serialized by the session's own
// lock, held for the whole handle call; distinct sessions proceed
// fully concurrently. The knowledge base and resolver are read-only
// shared dependencies.
type Engine struct {
	base     *knowledge.Base
	resolver *brand.Resolver
	client   llm.Client
	logger   log.Logger
	window   int

	sessions *session.Store
}

// New creates an engine with required configuration.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	window := cfg.HistoryWindow
	if window <= 0 {
		window = defaultWindow
	}

	e := &Engine{
		base:     cfg.Base,
		resolver: cfg.Resolver,
		client:   cfg.Client,
		logger:   cfg.Logger,
		window:   window,
		sessions: session.NewStore(),
	}

	e.logger.Info("chat engine initialized",
		"companies", cfg.Base.Len(),
		"keywords", len(cfg.Base.Vocabulary.Entries),
		"default_brand", cfg.Base.Vocabulary.Default,
		"history_window", window)
	return e, nil
}

// Handle processes one utterance for a session and returns the reply.
//
// An empty sessionID creates a fresh session with a generated id. A
// blank utterance returns RetryPrompt without touching any state.
// Generation failures are converted to a degraded reply and recorded
// in the transcript like any other assistant turn.
//
// The only error return is caller cancellation: the in-flight result
// is discarded and the session state is left exactly as it was.
func (e *Engine) Handle(ctx context.Context, sessionID, utterance string) (Reply, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if strings.TrimSpace(utterance) == "" {
		return Reply{SessionID: sessionID, Text: RetryPrompt}, nil
	}

	s := e.sessions.GetOrCreate(sessionID)
	s.Lock()
	defer s.Unlock()

	// For an unseeded session the brand and system prompt are computed
	// into locals only; the seed commits together with the exchange
	// below, after the cancellation check. An abandoned first request
	// must not pin a brand.
	seeding := !s.Seeded()
	var seedBrand, seedPrompt string

	var outbound []session.Turn
	if seeding {
		seedBrand = e.resolver.Resolve(utterance)
		seedPrompt = prompt.Compose(e.base, seedBrand)
		outbound = []session.Turn{{Role: session.RoleSystem, Content: seedPrompt}}
	} else {
		outbound = s.Window(e.window)
	}

	messages := make([]llm.Message, 0, len(outbound)+1)
	for _, t := range outbound {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, llm.Message{Role: session.RoleUser, Content: utterance})

	text, genErr := e.client.Generate(ctx, messages)

	// Caller abandoned the request: discard the result, mutate nothing.
	if err := ctx.Err(); err != nil {
		e.logger.Debug("request abandoned, discarding result", "session_id", sessionID)
		return Reply{}, err
	}

	degraded := false
	if genErr != nil {
		text = degradedReply(genErr)
		degraded = true
		e.logger.Warn("generation failed, degrading reply",
			"session_id", sessionID, "error", genErr)
	}

	// Seed and exchange commit atomically under the session lock so
	// the transcript is always one system turn followed by alternating
	// user/assistant turns.
	if seeding {
		s.Seed(seedBrand, seedPrompt)
		e.logger.Info("session seeded", "session_id", sessionID, "brand", seedBrand)
	}
	s.Append(session.Turn{Role: session.RoleUser, Content: utterance})
	s.Append(session.Turn{Role: session.RoleAssistant, Content: text})

	return Reply{SessionID: sessionID, Text: text, Degraded: degraded}, nil
}

// Reset clears a session's memory and returns it to unseeded.
// Idempotent; calling it for an unknown session id is a no-op and
// creates nothing.
func (e *Engine) Reset(sessionID string) {
	s, ok := e.sessions.Peek(sessionID)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	s.Reset()
	e.logger.Info("session reset", "session_id", sessionID)
}

// History returns a copy of a session's full transcript.
// The second return is false for unknown session ids.
func (e *Engine) History(sessionID string) ([]session.Turn, bool) {
	s, ok := e.sessions.Peek(sessionID)
	if !ok {
		return nil, false
	}
	s.Lock()
	defer s.Unlock()
	return s.Turns(), true
}

// Brand returns the brand resolved for a session at seed time.
func (e *Engine) Brand(sessionID string) (string, bool) {
	s, ok := e.sessions.Peek(sessionID)
	if !ok {
		return "", false
	}
	s.Lock()
	defer s.Unlock()
	if !s.Seeded() {
		return "", false
	}
	return s.Brand(), true
}

// Sessions returns the number of tracked sessions.
func (e *Engine) Sessions() int {
	return e.sessions.Len()
}

// degradedReply builds the user-safe fallback for a failed generation,
// embedding a short diagnostic so operators can tell failure modes
// apart from transcripts.
func degradedReply(err error) string {
	var reason string
	switch {
	case errors.Is(err, llm.ErrTimeout):
		reason = "the response took too long"
	case errors.Is(err, llm.ErrBusy):
		reason = "we're handling too many requests"
	case errors.Is(err, llm.ErrEmptyReply):
		reason = "no answer was produced"
	default:
		reason = "our answering service is unavailable"
	}
	return fmt.Sprintf("Sorry, I couldn't answer that right now (%s). Please try again in a moment, or contact us directly.", reason)
}
