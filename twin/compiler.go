package twin

import (
	"context"
	"fmt"
	"time"

	"github.com/twinhq/twinforge/domain"
	"github.com/twinhq/twinforge/gateway"
	"github.com/twinhq/twinforge/observability"
)

// Compile turns an extracted profile into a persona configuration. The
// generated text becomes the persona's system prompt verbatim; model and
// response parameters come from configuration. Compilation is
// all-or-nothing: on error no configuration is returned, so callers keep
// whatever persona they had.
func (s *Service) Compile(ctx context.Context, profile *domain.Profile) (*domain.PersonaConfig, error) {
	if profile.Empty() {
		return nil, domain.ErrPreconditionFailed
	}

	prompt := []gateway.ChatMessage{
		{Role: domain.RoleUser, Content: compilePrompt(profile.PromptText())},
	}

	systemPrompt, err := s.complete(ctx, observability.StageCompile, prompt, s.cfg.CompileMaxTokens, 0)
	if err != nil {
		return nil, fmt.Errorf("persona compilation failed: %w", err)
	}

	return &domain.PersonaConfig{
		Model:        s.cfg.CompletionModel,
		SystemPrompt: systemPrompt,
		MaxTokens:    s.cfg.PersonaMaxTokens,
		Temperature:  float32(s.cfg.PersonaTemperature),
		CompiledAt:   time.Now().UTC(),
	}, nil
}
