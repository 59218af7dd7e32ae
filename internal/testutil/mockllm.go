// Package testutil provides shared test helpers: a deterministic mock
// generation client and logging helpers.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/dmcneil/frontdesk/internal/llm"
)

// MockLLM provides deterministic generation replies for testing.
// It matches the last user message against registered patterns and
// returns the corresponding reply.
//
// Thread-safe for concurrent use.
type MockLLM struct {
	mu       sync.Mutex
	rules    []mockRule
	fallback string
	failWith error
	calls    []MockCall
}

type mockRule struct {
	pattern string // substring match in the last user message
	reply   string
}

// MockCall records a single call to the mock client.
type MockCall struct {
	Messages    []llm.Message // full outbound sequence
	UserMessage string        // last user message text
	Reply       string        // reply returned ("" when erroring)
}

// NewMockLLM creates a mock client with the given fallback reply.
// The fallback is returned when no pattern matches.
func NewMockLLM(fallback string) *MockLLM {
	return &MockLLM{fallback: fallback}
}

// AddReply registers a pattern-reply pair. When the last user message
// contains the pattern (case-insensitive), the reply is returned.
// Patterns are checked in registration order; first match wins.
func (m *MockLLM) AddReply(pattern, reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{pattern: strings.ToLower(pattern), reply: reply})
}

// FailWith makes every subsequent Generate call return err.
// Pass nil to restore normal behavior.
func (m *MockLLM) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Calls returns a copy of all recorded calls.
func (m *MockLLM) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]MockCall, len(m.calls))
	copy(cp, m.calls)
	return cp
}

// LastCall returns the most recent call, or false when none happened.
func (m *MockLLM) LastCall() (MockCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return MockCall{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// Reset clears all recorded calls (keeps registered replies).
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Generate implements llm.Client.
func (m *MockLLM) Generate(_ context.Context, messages []llm.Message) (string, error) {
	var userText string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			userText = messages[i].Content
			break
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	msgCopy := make([]llm.Message, len(messages))
	copy(msgCopy, messages)

	if m.failWith != nil {
		m.calls = append(m.calls, MockCall{Messages: msgCopy, UserMessage: userText})
		return "", m.failWith
	}

	reply := m.fallback
	lower := strings.ToLower(userText)
	for _, r := range m.rules {
		if strings.Contains(lower, r.pattern) {
			reply = r.reply
			break
		}
	}

	m.calls = append(m.calls, MockCall{Messages: msgCopy, UserMessage: userText, Reply: reply})
	return reply, nil
}
