package ports

import (
	"context"

	"evidencija/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetUserByEmail retrieves a user by email, NotFound when absent
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by their ID
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// UpsertUser creates the user or replaces the password hash of an existing one
	UpsertUser(ctx context.Context, email, passwordHash string) (*models.User, error)
}
