package twin

import "strings"

// IsTerminalSignal reports whether an assistant reply contains the
// terminal phrase that marks the interview complete. Kept as an isolated
// predicate so the detection mechanism can be swapped (e.g. for a
// structured tool response) without touching the state machine.
func IsTerminalSignal(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(phrase))
}
