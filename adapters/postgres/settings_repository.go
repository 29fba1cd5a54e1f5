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

// SettingsRepositoryImpl implements SettingsRepository on sqlx
type SettingsRepositoryImpl struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sqlx.DB) ports.SettingsRepository {
	return &SettingsRepositoryImpl{db: db}
}

// GetSettings returns the user's settings
func (r *SettingsRepositoryImpl) GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.GetContext(ctx, &settings, r.db.Rebind(`
		SELECT user_id, full_name, organisation_name, home_address, work_address,
			distance_to_work, distance_from_work, price_per_km, default_transport, updated_at
		FROM settings
		WHERE user_id = ?
	`), userID)
	if isNoRows(err) {
		return nil, errors.NotFound("settings")
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load settings", err)
	}
	return &settings, nil
}

// UpsertSettings creates or replaces the user's settings
func (r *SettingsRepositoryImpl) UpsertSettings(ctx context.Context, settings *models.Settings) error {
	if settings.DefaultTransport == "" {
		settings.DefaultTransport = models.DefaultTransport
	}
	settings.UpdatedAt = time.Now().UTC()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO settings (user_id, full_name, organisation_name, home_address, work_address,
			distance_to_work, distance_from_work, price_per_km, default_transport, updated_at)
		VALUES (:user_id, :full_name, :organisation_name, :home_address, :work_address,
			:distance_to_work, :distance_from_work, :price_per_km, :default_transport, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = excluded.full_name,
			organisation_name = excluded.organisation_name,
			home_address = excluded.home_address,
			work_address = excluded.work_address,
			distance_to_work = excluded.distance_to_work,
			distance_from_work = excluded.distance_from_work,
			price_per_km = excluded.price_per_km,
			default_transport = excluded.default_transport,
			updated_at = excluded.updated_at
	`, settings)
	if err != nil {
		return errors.DatabaseError("failed to save settings", err)
	}
	return nil
}
