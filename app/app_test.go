package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"evidencija/adapters/excel"
	"evidencija/internal"
	"evidencija/models"
	"evidencija/ports"
	"evidencija/templates"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*models.Settings), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, settings *models.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockTravelExpenseRepository struct {
	mock.Mock
}

func (m *MockTravelExpenseRepository) ListMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*models.TravelExpense, error) {
	args := m.Called(ctx, userID, month)
	if rows := args.Get(0); rows != nil {
		return rows.([]*models.TravelExpense), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTravelExpenseRepository) SaveRows(ctx context.Context, userID uuid.UUID, rows []*models.TravelExpense) error {
	args := m.Called(ctx, userID, rows)
	return args.Error(0)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, text string) ([]ports.Place, error) {
	args := m.Called(ctx, text)
	if places := args.Get(0); places != nil {
		return places.([]ports.Place), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGeocoder) Directions(ctx context.Context, start, end ports.Coordinates, profile string) (*ports.Route, error) {
	args := m.Called(ctx, start, end, profile)
	if r := args.Get(0); r != nil {
		return r.(*ports.Route), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *internal.Logger {
	return internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError)
}

func testStore(t *testing.T) *excel.TemplateStore {
	t.Helper()
	store, err := excel.NewTemplateStore(templates.FS, templates.Honorari, templates.Prijevoz)
	require.NoError(t, err)
	return store
}

func testSettings() *models.Settings {
	return &models.Settings{
		FullName:         "Ana Horvat",
		OrganisationName: "Osnovna škola Vladimira Nazora",
		HomeAddress:      "Ilica 1, Zagreb",
		WorkAddress:      "Savska 5, Zagreb",
		DistanceToWork:   models.ParseDecimal("10"),
		DistanceFromWork: models.ParseDecimal("12"),
		PricePerKm:       models.ParseDecimal("0,5"),
		DefaultTransport: models.DefaultTransport,
	}
}

// openDocument reopens rendered bytes and returns a cell reader for the first sheet
func openDocument(t *testing.T, doc *Document) func(addr string) string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	sheet := f.GetSheetName(0)

	return func(addr string) string {
		v, err := f.GetCellValue(sheet, addr)
		require.NoError(t, err)
		return v
	}
}

func february(day int) time.Time {
	return time.Date(2026, time.February, day, 9, 0, 0, 0, time.UTC)
}
