// Package gateway wraps the external text-completion capability. The
// pipeline only depends on the Completer interface; the OpenAI client is
// one implementation of it.
package gateway

import (
	"context"
)

// ChatMessage is one entry of the prompt transcript sent to the gateway.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces one assistant completion for an ordered transcript.
// Implementations must return an error wrapping
// domain.ErrCompletionUnavailable on transport failure, timeout, or a
// blank completion; they must never fabricate text.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float32) (string, error)
}
