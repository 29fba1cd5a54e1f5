package migration

import (
	"context"

	"evidencija/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations. The DDL sticks to types
// and clauses PostgreSQL and SQLite both accept; ids are generated by the
// application, timestamps are written explicitly.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order. Every step is
// idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createUsersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create users table")
	}

	if err := r.createSessionsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create sessions table")
	}

	if err := r.createSettingsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create settings table")
	}

	if err := r.createTravelExpensesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create travel_expenses table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createUsersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createSessionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			token UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createSettingsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			organisation_name VARCHAR(255) NOT NULL DEFAULT '',
			home_address VARCHAR(500) NOT NULL DEFAULT '',
			work_address VARCHAR(500) NOT NULL DEFAULT '',
			distance_to_work NUMERIC(10,2),
			distance_from_work NUMERIC(10,2),
			price_per_km NUMERIC(10,4),
			default_transport VARCHAR(100) NOT NULL DEFAULT 'osobni automobil',
			updated_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createTravelExpensesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS travel_expenses (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			work_date VARCHAR(10) NOT NULL,
			included BOOLEAN NOT NULL DEFAULT TRUE,
			transport VARCHAR(100) NOT NULL DEFAULT '',
			distance_to NUMERIC(10,2),
			distance_from NUMERIC(10,2),
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, work_date)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_travel_expenses_user_date ON travel_expenses(user_id, work_date)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
