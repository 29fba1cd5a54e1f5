package postgres

import (
	"context"
	"strings"
	"time"

	"evidencija/internal/errors"
	"evidencija/models"
	"evidencija/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UserRepositoryImpl implements UserRepository on sqlx
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(`
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`), normalizeEmail(email))
	if isNoRows(err) {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load user", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(`
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?
	`), userID)
	if isNoRows(err) {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load user", err)
	}
	return &user, nil
}

// UpsertUser creates the user, or resets the password of an existing one
func (r *UserRepositoryImpl) UpsertUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :created_at, :updated_at)
	`, user)
	if err == nil {
		return &user, nil
	}

	// Handle unique constraint violation: the user already exists
	if !isUniqueViolation(err) {
		return nil, errors.DatabaseError("failed to create user", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE users SET password_hash = ?, updated_at = ? WHERE email = ?
	`), passwordHash, now, user.Email); err != nil {
		return nil, errors.DatabaseError("failed to update user", err)
	}
	return r.GetUserByEmail(ctx, user.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
