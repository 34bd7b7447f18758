package domain

import "errors"

// Sentinel errors for the pipeline. Wrap with fmt.Errorf("...: %w", err)
// and match with errors.Is.
var (
	// ErrCompletionUnavailable covers gateway transport failures, timeouts
	// and blank completions. Retryable: resending the turn re-sends the
	// unchanged transcript, which is safe because the gateway is stateless
	// per call.
	ErrCompletionUnavailable = errors.New("completion gateway unavailable")

	// ErrPreconditionFailed is returned when persona compilation is
	// attempted before any profile has been extracted. An ordering bug in
	// the caller, not a user-facing condition.
	ErrPreconditionFailed = errors.New("precondition failed: empty profile")

	// ErrSessionNotFound is returned by reads that require an existing
	// session before any turn has happened.
	ErrSessionNotFound = errors.New("session not found")

	// ErrVersionConflict signals a concurrent mutation of the same
	// session. The caller reloads and retries the whole turn rather than
	// merging partial state.
	ErrVersionConflict = errors.New("session version conflict")

	ErrProfileNotFound = errors.New("profile not found")
	ErrPersonaNotFound = errors.New("persona not found")
)
