// Package session signs users in with email and password and resolves the
// session cookie back to a user.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"evidencija/internal"
	"evidencija/internal/errors"
	"evidencija/models"
	"evidencija/ports"
)

// Service manages login sessions
type Service struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	ttl      time.Duration
	now      func() time.Time
	logger   *internal.Logger
}

// NewService creates a session service issuing sessions valid for ttl
func NewService(users ports.UserRepository, sessions ports.SessionRepository, ttl time.Duration, logger *internal.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With("session"),
	}
}

// HashPassword hashes a plain password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

// Login checks the credentials and opens a new session. Unknown emails and
// wrong passwords fail alike.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.Unauthorized("invalid credentials")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, errors.CodeNotFound) {
		s.logger.Info("login rejected for unknown email")
		return nil, errors.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected for user %s", user.ID)
		return nil, errors.Unauthorized("invalid credentials")
	}

	now := s.now()
	session := &models.Session{
		Token:     uuid.New(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl).Unix(),
		CreatedAt: now.UTC(),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Debug("session opened for user %s", user.ID)
	return session, nil
}

// Resolve maps a cookie token to its user. Malformed, unknown and expired
// tokens are Unauthorized; expired sessions are removed on the way.
func (s *Service) Resolve(ctx context.Context, token string) (*models.User, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, errors.Unauthorized("no session")
	}

	session, err := s.sessions.GetSession(ctx, id)
	if errors.Is(err, errors.CodeNotFound) {
		return nil, errors.Unauthorized("no session")
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(s.now()) {
		if err := s.sessions.DeleteSession(ctx, id); err != nil {
			s.logger.Warn("failed to drop expired session: %v", err)
		}
		return nil, errors.Unauthorized("session expired")
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if errors.Is(err, errors.CodeNotFound) {
		return nil, errors.Unauthorized("no session")
	}
	return user, err
}

// Logout ends a session. Unknown or malformed tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, id)
}

// TTL returns how long new sessions stay valid
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Prune deletes expired sessions
func (s *Service) Prune(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
