package ports

import (
	"context"
	"time"

	"evidencija/models"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for login session storage
type SessionRepository interface {
	// CreateSession stores a new session
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by token, NotFound when absent
	GetSession(ctx context.Context, token uuid.UUID) (*models.Session, error)

	// DeleteSession removes a session; removing an unknown token is not an error
	DeleteSession(ctx context.Context, token uuid.UUID) error

	// DeleteExpired removes sessions expired at now and reports how many
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
