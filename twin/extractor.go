package twin

import (
	"context"
	"fmt"

	"github.com/twinhq/twinforge/domain"
	"github.com/twinhq/twinforge/gateway"
	"github.com/twinhq/twinforge/observability"
)

// Extract condenses a transcript into the structured profile summary.
// System messages are excluded; only user/assistant turns matter. Each
// pass re-reads the whole transcript, so the result replaces any previous
// profile rather than merging into it.
func (s *Service) Extract(ctx context.Context, messages []domain.Message) (*domain.Profile, error) {
	prompt := []gateway.ChatMessage{
		{Role: domain.RoleUser, Content: extractionPrompt(messages)},
	}

	summary, err := s.complete(ctx, observability.StageExtraction, prompt, s.cfg.ExtractionMaxTokens, 0)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	return domain.MarkdownProfile(summary), nil
}
