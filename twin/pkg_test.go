package twin

import (
	"testing"

	"github.com/twinhq/twinforge/config"
	"github.com/twinhq/twinforge/gateway"
	"github.com/twinhq/twinforge/tests/helpers"
)

func testConfig() *config.Config {
	return &config.Config{
		CompletionModel:     "gpt-3.5-turbo",
		TerminalPhrase:      config.DefaultTerminalPhrase,
		InterviewMaxTokens:  150,
		ExtractionMaxTokens: 500,
		CompileMaxTokens:    500,
		PersonaMaxTokens:    150,
		PersonaTemperature:  0.7,
	}
}

func newTestService(t *testing.T, completer gateway.Completer) *Service {
	t.Helper()
	st := helpers.NewTestSQLiteStore(t)
	return New(st, completer, testConfig(), nil)
}

// terminalReply contains the canonical terminal phrase inside a longer
// assistant message, with different casing.
const terminalReply = "Thanks for sharing so much about yourself! Your Digital Version Is Now Created."
