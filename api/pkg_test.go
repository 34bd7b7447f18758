package api

import (
	"testing"

	"github.com/twinhq/twinforge/config"
	"github.com/twinhq/twinforge/gateway"
	"github.com/twinhq/twinforge/tests/helpers"
	"github.com/twinhq/twinforge/twin"
)

// terminalReply contains the canonical terminal phrase.
const terminalReply = "All set! Your digital version is now created."

func newTestHandler(t *testing.T, completer gateway.Completer) *Handler {
	t.Helper()

	cfg := &config.Config{
		CompletionModel:     "gpt-3.5-turbo",
		TerminalPhrase:      config.DefaultTerminalPhrase,
		InterviewMaxTokens:  150,
		ExtractionMaxTokens: 500,
		CompileMaxTokens:    500,
		PersonaMaxTokens:    150,
		PersonaTemperature:  0.7,
	}
	st := helpers.NewTestSQLiteStore(t)
	return NewHandler(twin.New(st, completer, cfg, nil))
}
