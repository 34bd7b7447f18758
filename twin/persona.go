package twin

import (
	"context"
	"fmt"

	"github.com/twinhq/twinforge/domain"
	"github.com/twinhq/twinforge/gateway"
	"github.com/twinhq/twinforge/observability"
)

// RespondAsPersona answers an incoming message as the user's digital
// version: the compiled persona system prompt plus the stored transcript
// as few-shot context, one gateway call.
func (s *Service) RespondAsPersona(ctx context.Context, userID, incoming string) (string, error) {
	if incoming == "" {
		return "", fmt.Errorf("message is required")
	}

	session, err := s.store.GetSession(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return "", domain.ErrSessionNotFound
	}
	if !session.HasPersona() {
		return "", domain.ErrPersonaNotFound
	}

	messages, err := s.store.GetMessages(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get messages: %w", err)
	}

	prompt := []gateway.ChatMessage{
		{Role: domain.RoleSystem, Content: personaSystemPrompt(session.Persona, messages)},
		{Role: domain.RoleUser, Content: incoming},
	}

	reply, err := s.complete(ctx, observability.StagePersonaReply, prompt, session.Persona.MaxTokens, session.Persona.Temperature)
	if err != nil {
		return "", err
	}
	return reply, nil
}
