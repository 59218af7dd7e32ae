// Package session holds per-conversation state: the ordered turn
// history, the seeded flag, and the brand resolved at seed time.
//
// Thread safety: a State carries its own lock, but individual methods
// do not take it. The chat engine locks a State for the whole of one
// handle call so that turn appends from concurrent requests on the
// same session can never interleave. Distinct sessions share nothing
// and proceed fully concurrently.
package session

import "sync"

// Turn roles. The first turn of a seeded session is always the system
// turn; user and assistant turns alternate after it.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one immutable conversation turn.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the conversation state for one session id.
//
// The zero value is not useful; States are created by a Store.
type State struct {
	mu sync.Mutex

	id     string
	brand  string
	seeded bool
	turns  []Turn
}

// Lock acquires the session's serialization lock. At most one handle
// call may operate on a session at a time.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases the session's serialization lock.
func (s *State) Unlock() { s.mu.Unlock() }

// ID returns the session identifier.
func (s *State) ID() string { return s.id }

// Seeded reports whether the system turn has been appended.
// Caller must hold the lock.
func (s *State) Seeded() bool { return s.seeded }

// Brand returns the brand key resolved at seed time. Empty until
// seeded; fixed for the life of the session afterwards.
// Caller must hold the lock.
func (s *State) Brand() string { return s.brand }

// Seed appends the system turn and records the resolved brand,
// transitioning the session from unseeded to active.
// Caller must hold the lock.
func (s *State) Seed(brand, systemPrompt string) {
	s.turns = append(s.turns, Turn{Role: RoleSystem, Content: systemPrompt})
	s.brand = brand
	s.seeded = true
}

// Append adds a turn to the transcript. Caller must hold the lock.
func (s *State) Append(t Turn) {
	s.turns = append(s.turns, t)
}

// Turns returns a copy of the full transcript.
// Caller must hold the lock.
func (s *State) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the transcript length. Caller must hold the lock.
func (s *State) Len() int { return len(s.turns) }

// Window returns the turns to send to generation: the system turn
// plus at most the last n user/assistant exchanges. Older exchanges
// drop out of the window but stay in the transcript.
// Caller must hold the lock.
func (s *State) Window(n int) []Turn {
	if !s.seeded || len(s.turns) == 0 {
		return s.Turns()
	}

	tail := s.turns[1:]
	if max := 2 * n; n > 0 && len(tail) > max {
		tail = tail[len(tail)-max:]
	}

	out := make([]Turn, 0, 1+len(tail))
	out = append(out, s.turns[0])
	out = append(out, tail...)
	return out
}

// Reset clears the transcript and returns the session to unseeded.
// Idempotent. Caller must hold the lock.
func (s *State) Reset() {
	s.turns = nil
	s.brand = ""
	s.seeded = false
}
