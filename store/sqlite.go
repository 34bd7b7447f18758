package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/twinhq/twinforge/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			user_id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			profile TEXT,
			persona TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			message_id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES sessions(user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user_id, seq)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetSession retrieves a session by user ID. Returns (nil, nil) when no
// session exists yet.
func (s *SQLiteStore) GetSession(ctx context.Context, userID string) (*domain.Session, error) {
	var (
		session domain.Session
		profile sql.NullString
		persona sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, status, profile, persona, version, created_at, updated_at
		 FROM sessions WHERE user_id = ?`, userID).
		Scan(&session.UserID, &session.Status, &profile, &persona,
			&session.Version, &session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if profile.Valid && profile.String != "" {
		var p domain.Profile
		if err := json.Unmarshal([]byte(profile.String), &p); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
		session.Profile = &p
	}
	if persona.Valid && persona.String != "" {
		var pc domain.PersonaConfig
		if err := json.Unmarshal([]byte(persona.String), &pc); err != nil {
			return nil, fmt.Errorf("failed to decode persona: %w", err)
		}
		session.Persona = &pc
	}

	return &session, nil
}

// GetOrCreateSession returns the user's session, creating an empty
// in-progress one on first use. Creation is idempotent: a concurrent
// insert of the same user resolves to the stored row.
func (s *SQLiteStore) GetOrCreateSession(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, status, version, created_at, updated_at)
		 VALUES (?, ?, 1, ?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		userID, domain.SessionStatusInProgress, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.GetSession(ctx, userID)
}

// SaveSession persists the mutable session fields with an optimistic
// version check.
func (s *SQLiteStore) SaveSession(ctx context.Context, session *domain.Session) error {
	var profile, persona interface{}
	if session.Profile != nil {
		data, err := json.Marshal(session.Profile)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		profile = string(data)
	}
	if session.Persona != nil {
		data, err := json.Marshal(session.Persona)
		if err != nil {
			return fmt.Errorf("failed to encode persona: %w", err)
		}
		persona = string(data)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions
		 SET status = ?, profile = ?, persona = ?, version = version + 1, updated_at = ?
		 WHERE user_id = ? AND version = ?`,
		session.Status, profile, persona, now, session.UserID, session.Version)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if affected == 0 {
		existing, err := s.GetSession(ctx, session.UserID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrSessionNotFound
		}
		return domain.ErrVersionConflict
	}

	session.Version++
	session.UpdatedAt = now
	return nil
}

// AppendMessage appends one message to the user's transcript.
func (s *SQLiteStore) AppendMessage(ctx context.Context, message *domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, user_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		message.MessageID, message.UserID, message.Role, message.Content, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// GetMessages returns the full transcript for a user in append order.
func (s *SQLiteStore) GetMessages(ctx context.Context, userID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, user_id, role, content, created_at
		 FROM messages WHERE user_id = ? ORDER BY seq ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.MessageID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return messages, nil
}
