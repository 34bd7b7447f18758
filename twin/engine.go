package twin

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/twinhq/twinforge/domain"
	"github.com/twinhq/twinforge/observability"
)

// completedAcknowledgement is returned for turns that arrive after the
// interview has completed. No free-form gateway reply is generated; the
// new information is absorbed by re-running extraction.
const completedAcknowledgement = "Thank you for the additional information. Your digital twin has been updated."

// TurnResult is what the caller shows the user after one dialogue turn.
type TurnResult struct {
	Reply  string               `json:"reply"`
	Status domain.SessionStatus `json:"status"`
}

// SendUserMessage drives one assistant turn. It appends the user
// utterance, asks the gateway for the next interviewer reply, and on the
// terminal phrase flips the session to completed and runs extraction and
// persona compilation.
//
// The user message is persisted before the gateway call and is never
// rolled back: a failed turn surfaces domain.ErrCompletionUnavailable and
// a retry simply re-sends the unchanged transcript.
func (s *Service) SendUserMessage(ctx context.Context, userID, text string) (*TurnResult, error) {
	text = strings.TrimSpace(text)
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if text == "" {
		return nil, fmt.Errorf("message is required")
	}

	session, err := s.store.GetOrCreateSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}

	if _, err := s.appendMessage(ctx, userID, domain.RoleUser, text); err != nil {
		return nil, err
	}

	if session.Status == domain.SessionStatusCompleted {
		return s.acknowledgeCompleted(ctx, session)
	}

	messages, err := s.store.GetMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	prompt := transcriptPrompt(interviewSystemPrompt(s.cfg.TerminalPhrase), messages)
	reply, err := s.complete(ctx, observability.StageInterview, prompt, s.cfg.InterviewMaxTokens, 0)
	if err != nil {
		s.metrics.CountTurn("error")
		return nil, err
	}

	assistantMsg, err := s.appendMessage(ctx, userID, domain.RoleAssistant, reply)
	if err != nil {
		return nil, err
	}

	if !IsTerminalSignal(reply, s.cfg.TerminalPhrase) {
		s.metrics.CountTurn("reply")
		return &TurnResult{Reply: reply, Status: session.Status}, nil
	}

	// Terminal phrase seen: one-way gate to completed.
	session.Status = domain.SessionStatusCompleted
	s.refreshProfile(ctx, session, append(messages, *assistantMsg))
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.CountTurn("terminal")
	s.metrics.CountCompletedInterview()
	return &TurnResult{Reply: reply, Status: session.Status}, nil
}

// acknowledgeCompleted handles turns after completion: a fixed
// acknowledgement instead of a free-form reply, plus a synchronous
// re-extraction so the profile absorbs the new fact. Status stays
// completed.
func (s *Service) acknowledgeCompleted(ctx context.Context, session *domain.Session) (*TurnResult, error) {
	if _, err := s.appendMessage(ctx, session.UserID, domain.RoleAssistant, completedAcknowledgement); err != nil {
		return nil, err
	}

	messages, err := s.store.GetMessages(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	s.refreshProfile(ctx, session, messages)
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.CountTurn("acknowledged")
	return &TurnResult{Reply: completedAcknowledgement, Status: session.Status}, nil
}

// refreshProfile re-runs extraction over the full transcript and, when it
// yields a new profile, recompiles the persona. Both steps are
// best-effort: a gateway failure here is logged and the previous
// profile/persona are retained, so a flaky extraction can never undo a
// completed interview or crash the turn.
func (s *Service) refreshProfile(ctx context.Context, session *domain.Session, messages []domain.Message) {
	profile, err := s.Extract(ctx, messages)
	if err != nil {
		log.Printf("ERROR: failed to extract profile for user %s: %v", session.UserID, err)
		return
	}
	session.Profile = profile

	persona, err := s.Compile(ctx, session.Profile)
	if err != nil {
		log.Printf("ERROR: failed to compile persona for user %s: %v", session.UserID, err)
		return
	}
	session.Persona = persona
}
