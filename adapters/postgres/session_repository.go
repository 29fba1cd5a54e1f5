package postgres

import (
	"context"
	"time"

	"evidencija/internal/errors"
	"evidencija/models"
	"evidencija/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SessionRepositoryImpl implements SessionRepository on sqlx
type SessionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sqlx.DB) ports.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// CreateSession stores a new login session
func (r *SessionRepositoryImpl) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES (:token, :user_id, :expires_at, :created_at)
	`, session)
	if err != nil {
		return errors.DatabaseError("failed to create session", err)
	}
	return nil
}

// GetSession retrieves a session by token
func (r *SessionRepositoryImpl) GetSession(ctx context.Context, token uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.GetContext(ctx, &session, r.db.Rebind(`
		SELECT token, user_id, expires_at, created_at
		FROM sessions
		WHERE token = ?
	`), token)
	if isNoRows(err) {
		return nil, errors.NotFound("session")
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load session", err)
	}
	return &session, nil
}

// DeleteSession removes a session by token
func (r *SessionRepositoryImpl) DeleteSession(ctx context.Context, token uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sessions WHERE token = ?`), token); err != nil {
		return errors.DatabaseError("failed to delete session", err)
	}
	return nil
}

// DeleteExpired removes every session expired at now
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sessions WHERE expires_at <= ?`), now.Unix())
	if err != nil {
		return 0, errors.DatabaseError("failed to prune sessions", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("failed to prune sessions", err)
	}
	return n, nil
}
