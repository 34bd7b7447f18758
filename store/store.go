// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/twinhq/twinforge/domain"
)

// Store defines the interface for session and transcript persistence.
// One session per user; messages are an append-only log keyed by user.
type Store interface {
	// Session operations
	GetSession(ctx context.Context, userID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, userID string) (*domain.Session, error)
	// SaveSession persists status/profile/persona changes. It checks the
	// session version and returns domain.ErrVersionConflict if another
	// writer got there first; on success the session's Version is bumped
	// in place.
	SaveSession(ctx context.Context, session *domain.Session) error

	// Message operations
	AppendMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, userID string) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
