package ports

import (
	"context"
	"time"

	"evidencija/models"

	"github.com/google/uuid"
)

// TravelExpenseRepository stores saved commuting rows per user and date
type TravelExpenseRepository interface {
	// ListMonth returns the saved rows of month's calendar month ordered by date
	ListMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*models.TravelExpense, error)

	// SaveRows upserts rows by user and date
	SaveRows(ctx context.Context, userID uuid.UUID, rows []*models.TravelExpense) error
}
