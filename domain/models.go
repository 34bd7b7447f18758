// Package domain defines the core domain models for the twin service.
package domain

import (
	"time"
)

// SessionStatus represents the lifecycle status of a conversation session.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// Message roles. The transcript is fed back to the completion gateway
// verbatim, so these match the chat-completions wire roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation. Immutable once appended;
// ordering is append-only and significant.
type Message struct {
	MessageID string    `json:"message_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"` // user, assistant, system
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the aggregate root for one user's twin-building conversation.
// Status is monotonic: once completed it never reverts; later turns only
// append messages and refresh the profile and persona.
type Session struct {
	UserID    string         `json:"user_id"`
	Status    SessionStatus  `json:"status"`
	Profile   *Profile       `json:"profile,omitempty"`
	Persona   *PersonaConfig `json:"persona,omitempty"`
	Version   int64          `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// HasProfile reports whether an extraction pass has produced a non-empty
// profile for this session.
func (s *Session) HasProfile() bool {
	return s.Profile != nil && !s.Profile.Empty()
}

// HasPersona reports whether a usable persona exists. A persona is never
// valid while the profile is empty.
func (s *Session) HasPersona() bool {
	return s.HasProfile() && s.Persona != nil && s.Persona.SystemPrompt != ""
}

// PersonaConfig holds the model parameters and system prompt that let a
// downstream responder answer as the user.
type PersonaConfig struct {
	Model        string    `json:"model"`
	SystemPrompt string    `json:"system_prompt"`
	MaxTokens    int       `json:"max_tokens"`
	Temperature  float32   `json:"temperature"`
	CompiledAt   time.Time `json:"compiled_at"`
}
