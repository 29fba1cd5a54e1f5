package postgres

import (
	"context"
	"time"

	"evidencija/domain/calendar"
	"evidencija/internal/errors"
	"evidencija/models"
	"evidencija/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TravelExpenseRepositoryImpl implements TravelExpenseRepository on sqlx
type TravelExpenseRepositoryImpl struct {
	db *sqlx.DB
}

// NewTravelExpenseRepository creates a new travel expense repository
func NewTravelExpenseRepository(db *sqlx.DB) ports.TravelExpenseRepository {
	return &TravelExpenseRepositoryImpl{db: db}
}

// ListMonth returns the saved rows of month's calendar month ordered by date
func (r *TravelExpenseRepositoryImpl) ListMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*models.TravelExpense, error) {
	first := calendar.MonthStart(month)
	last := first.AddDate(0, 1, -1)

	var rows []*models.TravelExpense
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT id, user_id, work_date, included, transport, distance_to, distance_from, updated_at
		FROM travel_expenses
		WHERE user_id = ? AND work_date >= ? AND work_date <= ?
		ORDER BY work_date
	`), userID, calendar.ISODate(first), calendar.ISODate(last))
	if err != nil {
		return nil, errors.DatabaseError("failed to list travel expenses", err)
	}
	return rows, nil
}

// SaveRows upserts rows by user and date in one transaction
func (r *TravelExpenseRepositoryImpl) SaveRows(ctx context.Context, userID uuid.UUID, rows []*models.TravelExpense) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, row := range rows {
		if _, err := calendar.ParseISO(row.WorkDate, time.UTC); err != nil {
			return errors.InvalidInput(err.Error())
		}
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		row.UserID = userID
		row.UpdatedAt = now

		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO travel_expenses (id, user_id, work_date, included, transport, distance_to, distance_from, updated_at)
			VALUES (:id, :user_id, :work_date, :included, :transport, :distance_to, :distance_from, :updated_at)
			ON CONFLICT (user_id, work_date) DO UPDATE SET
				included = excluded.included,
				transport = excluded.transport,
				distance_to = excluded.distance_to,
				distance_from = excluded.distance_from,
				updated_at = excluded.updated_at
		`, row); err != nil {
			return errors.DatabaseError("failed to save travel expense", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit travel expenses", err)
	}
	return nil
}
