// Package llm is the generation gateway: it invokes the external
// chat-completion backend with a composed message sequence and maps
// transport and backend failures to typed errors.
//
// The engine never sees a raw backend error; it checks the sentinels
// here and degrades to a textual reply, so a generation failure can
// never crash a conversation.
package llm

import (
	"context"
	"errors"
)

// Sentinel errors for gateway operations, checkable with errors.Is().
var (
	// ErrUnavailable indicates the backend could not be reached or
	// returned an error status.
	ErrUnavailable = errors.New("generation backend unavailable")

	// ErrTimeout indicates the backend did not answer within the
	// configured deadline.
	ErrTimeout = errors.New("generation timed out")

	// ErrEmptyReply indicates the backend answered with no usable text.
	ErrEmptyReply = errors.New("generation returned empty reply")

	// ErrBusy indicates the local rate limit rejected the request.
	ErrBusy = errors.New("generation rate limit exceeded")
)

// Message is one turn of the outbound conversation, chat-completion
// style. Roles are "system", "user", and "assistant".
type Message struct {
	Role    string
	Content string
}

// Client generates a reply from an ordered message sequence.
//
// Interface defined on the consumer side; implementations include the
// OpenAI-compatible gateway and the test mock.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
