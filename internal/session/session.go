package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/linguaweb/internal/database"
	"github.com/example/linguaweb/pkg/models"
)

// Manager issues and validates server-side login sessions backed by the
// sessions table. Expired rows are swept periodically by the scheduler.
type Manager struct {
	sessions *database.SessionRepository
	ttl      time.Duration
}

// NewManager creates a new session manager
func NewManager(sessions *database.SessionRepository, ttl time.Duration) *Manager {
	return &Manager{sessions: sessions, ttl: ttl}
}

// Create starts a new session for a user and returns it
func (m *Manager) Create(ctx context.Context, userID int64) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UserID resolves a session token to a user ID. The second return value is
// false for unknown or expired tokens.
func (m *Manager) UserID(ctx context.Context, token string) (int64, bool, error) {
	session, err := m.sessions.GetByToken(ctx, token)
	if err != nil {
		return 0, false, err
	}
	if session == nil {
		return 0, false, nil
	}
	if time.Now().After(session.ExpiresAt) {
		// Lazy cleanup; the periodic sweep handles the rest
		_ = m.sessions.Delete(ctx, token)
		return 0, false, nil
	}
	return session.UserID, true, nil
}

// Destroy ends a session
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.sessions.Delete(ctx, token)
}
