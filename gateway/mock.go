package gateway

import (
	"context"
	"sync"
)

// Call records one Complete invocation made against a ScriptedCompleter.
type Call struct {
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float32
}

// ScriptedCompleter is a Completer for tests. It replays a fixed sequence
// of replies (repeating the last one once exhausted) and records every
// call it receives.
type ScriptedCompleter struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   []Call
}

// Ensure ScriptedCompleter implements Completer.
var _ Completer = (*ScriptedCompleter)(nil)

// NewScriptedCompleter creates a completer that returns the given replies
// in order.
func NewScriptedCompleter(replies ...string) *ScriptedCompleter {
	return &ScriptedCompleter{replies: replies}
}

// FailWith queues errors to be returned before any scripted replies. A
// nil entry means "succeed with the next scripted reply".
func (s *ScriptedCompleter) FailWith(errs ...error) *ScriptedCompleter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, errs...)
	return s
}

// Complete returns the next queued error or scripted reply.
func (s *ScriptedCompleter) Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float32) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]ChatMessage, len(messages))
	copy(msgs, messages)
	s.calls = append(s.calls, Call{Messages: msgs, MaxTokens: maxTokens, Temperature: temperature})

	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return "", err
		}
	}

	if len(s.replies) == 0 {
		return "ok", nil
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

// Calls returns a copy of the recorded invocations.
func (s *ScriptedCompleter) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many times Complete has been invoked.
func (s *ScriptedCompleter) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
