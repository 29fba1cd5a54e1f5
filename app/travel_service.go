package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"evidencija/domain/calendar"
	"evidencija/domain/report"
	"evidencija/internal"
	"evidencija/internal/errors"
	"evidencija/models"
	"evidencija/ports"
)

// TravelMonth is the editable state of one month's commuting report
type TravelMonth struct {
	Month    time.Time
	Settings *models.Settings
	Rows     []report.TravelRow
}

// TravelService loads and saves commuting rows
type TravelService struct {
	settings ports.SettingsRepository
	expenses ports.TravelExpenseRepository
	logger   *internal.Logger
}

// NewTravelService creates the service
func NewTravelService(settings ports.SettingsRepository, expenses ports.TravelExpenseRepository, logger *internal.Logger) *TravelService {
	return &TravelService{settings: settings, expenses: expenses, logger: logger.With("travel")}
}

// Month returns the rows of month, saved ones overriding the defaults.
// Settings is nil when the user has none.
func (s *TravelService) Month(ctx context.Context, userID uuid.UUID, month time.Time) (*TravelMonth, error) {
	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	saved, err := s.expenses.ListMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	return &TravelMonth{
		Month:    calendar.MonthStart(month),
		Settings: settings,
		Rows:     TravelDefaults(month, settings, saved),
	}, nil
}

// Save stores the rows together with the user's current distances
func (s *TravelService) Save(ctx context.Context, userID uuid.UUID, rows []report.TravelRow) (int, error) {
	settings, err := s.settings.GetSettings(ctx, userID)
	if errors.Is(err, errors.CodeNotFound) {
		return 0, errors.NotConfigured("Missing settings")
	}
	if err != nil {
		return 0, err
	}

	expenses := make([]*models.TravelExpense, 0, len(rows))
	for _, r := range rows {
		expenses = append(expenses, &models.TravelExpense{
			WorkDate:     r.DateISO,
			Included:     r.Included,
			Transport:    r.Transport,
			DistanceTo:   settings.DistanceToWork,
			DistanceFrom: settings.DistanceFromWork,
		})
	}
	if err := s.expenses.SaveRows(ctx, userID, expenses); err != nil {
		return 0, err
	}
	s.logger.Debug("saved %d travel rows for %s", len(expenses), userID)
	return len(expenses), nil
}
