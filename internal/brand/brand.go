// Package brand maps free-text utterances to brand keys using the
// knowledge document's routing vocabulary.
//
// The classifier is deliberately simple and deterministic: the first
// keyword (in vocabulary declaration order) contained in the
// lowercased utterance wins, and the default brand applies when no
// keyword matches. Matching is substring containment, not whole-word.
package brand

import (
	"strings"

	"github.com/dmcneil/frontdesk/internal/knowledge"
)

// Resolver classifies utterances to brand keys.
// Read-only after construction; safe for concurrent use.
type Resolver struct {
	entries []knowledge.Entry
	def     string
}

// NewResolver builds a Resolver from a validated vocabulary.
// Keywords are assumed lowercase (knowledge.Load normalizes them).
func NewResolver(v knowledge.Vocabulary) *Resolver {
	entries := make([]knowledge.Entry, len(v.Entries))
	copy(entries, v.Entries)
	return &Resolver{entries: entries, def: v.Default}
}

// Resolve returns the brand key for an utterance.
//
// It never errors: the knowledge invariant guarantees the default
// brand exists, so every utterance resolves to a valid key.
func (r *Resolver) Resolve(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, e := range r.entries {
		if strings.Contains(lower, e.Keyword) {
			return e.Brand
		}
	}
	return r.def
}

// Default returns the fallback brand key.
func (r *Resolver) Default() string {
	return r.def
}
