package ports

import (
	"context"

	"evidencija/models"

	"github.com/google/uuid"
)

// SettingsRepository stores one settings record per user
type SettingsRepository interface {
	// GetSettings returns the user's settings, NotFound when the user never saved any
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error)

	// UpsertSettings creates or replaces the user's settings
	UpsertSettings(ctx context.Context, settings *models.Settings) error
}
