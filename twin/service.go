// Package twin implements the conversation-to-persona pipeline: the
// dialogue engine that drives the interview, the profile extractor that
// condenses the transcript, and the persona compiler that turns the
// profile into a reusable persona configuration.
package twin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/twinhq/twinforge/config"
	"github.com/twinhq/twinforge/domain"
	"github.com/twinhq/twinforge/gateway"
	"github.com/twinhq/twinforge/observability"
	"github.com/twinhq/twinforge/store"
)

// Service is the pipeline entry point. All operations act on one session
// belonging to one user; callers must not issue two concurrent turns for
// the same user (the store's version check turns races into
// domain.ErrVersionConflict).
type Service struct {
	store     store.Store
	completer gateway.Completer
	cfg       *config.Config
	metrics   *observability.Metrics
}

// New creates a new twin service. metrics may be nil.
func New(st store.Store, completer gateway.Completer, cfg *config.Config, metrics *observability.Metrics) *Service {
	return &Service{
		store:     st,
		completer: completer,
		cfg:       cfg,
		metrics:   metrics,
	}
}

// History is the caller-facing view of a conversation.
type History struct {
	Messages []domain.Message     `json:"messages"`
	Status   domain.SessionStatus `json:"status"`
}

// FetchHistory returns the transcript and status for a user, lazily
// creating the session on first contact.
func (s *Service) FetchHistory(ctx context.Context, userID string) (*History, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	session, err := s.store.GetOrCreateSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}
	messages, err := s.store.GetMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return &History{Messages: messages, Status: session.Status}, nil
}

// GetProfile returns the extracted profile for a user.
func (s *Service) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	session, err := s.store.GetSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if !session.HasProfile() {
		return nil, domain.ErrProfileNotFound
	}
	return session.Profile, nil
}

// GetPersonaConfig returns the compiled persona configuration for a user.
func (s *Service) GetPersonaConfig(ctx context.Context, userID string) (*domain.PersonaConfig, error) {
	session, err := s.store.GetSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if !session.HasPersona() {
		return nil, domain.ErrPersonaNotFound
	}
	return session.Persona, nil
}

// UpdateProfileFacts replaces the user's profile with a structured fact
// map and recompiles the persona from it. The previous persona is
// retained if recompilation fails.
func (s *Service) UpdateProfileFacts(ctx context.Context, userID string, facts map[string]string) (*domain.Profile, error) {
	if len(facts) == 0 {
		return nil, fmt.Errorf("facts are required")
	}
	session, err := s.store.GetSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	session.Profile = domain.FactsProfile(facts)
	if persona, err := s.Compile(ctx, session.Profile); err != nil {
		log.Printf("ERROR: failed to recompile persona for user %s: %v", userID, err)
	} else {
		session.Persona = persona
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session.Profile, nil
}

// complete runs one gateway call with metrics around it.
func (s *Service) complete(ctx context.Context, stage string, messages []gateway.ChatMessage, maxTokens int, temperature float32) (string, error) {
	start := time.Now()
	text, err := s.completer.Complete(ctx, messages, maxTokens, temperature)
	s.metrics.CountGatewayCall(stage, err, time.Since(start))
	return text, err
}

// appendMessage persists one transcript entry.
func (s *Service) appendMessage(ctx context.Context, userID, role, content string) (*domain.Message, error) {
	msg := &domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to append %s message: %w", role, err)
	}
	return msg, nil
}
