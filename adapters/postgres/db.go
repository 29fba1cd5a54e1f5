package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"evidencija/internal/errors"
	"evidencija/internal/migration"
)

// Open connects to the database and brings its schema up to date.
// driver is "postgres" or "sqlite3".
func Open(ctx context.Context, driver, url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.ConnectContext(ctx, driver, url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	if driver == "sqlite3" {
		// sqlite serializes writers; an in-memory database exists per connection
		db.SetMaxOpenConns(1)
		if !strings.Contains(url, "_foreign_keys") {
			if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
				db.Close()
				return nil, errors.DatabaseError("failed to enable foreign keys", err)
			}
		}
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}
