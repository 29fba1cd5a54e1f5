package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"evidencija/adapters/excel"
	"evidencija/domain/calendar"
	"evidencija/domain/report"
	"evidencija/internal"
	"evidencija/internal/errors"
	"evidencija/models"
	"evidencija/ports"
	"evidencija/templates"
)

// OvertimeRequest is the body of an overtime download
type OvertimeRequest struct {
	Rows []report.OvertimeRow `json:"rows"`
	// Month is YYYY-MM; empty means the current month
	Month string `json:"month,omitempty"`
}

// TravelRequest is the body of a travel download or save
type TravelRequest struct {
	Rows []report.TravelRow `json:"rows"`
}

// ExportService renders the downloadable documents for a signed-in user
type ExportService struct {
	templates *excel.TemplateStore
	settings  ports.SettingsRepository
	now       func() time.Time
	logger    *internal.Logger
}

// NewExportService checks that both templates bind every name the renderers use
func NewExportService(store *excel.TemplateStore, settings ports.SettingsRepository, logger *internal.Logger) (*ExportService, error) {
	h, err := store.Layout(templates.Honorari)
	if err != nil {
		return nil, err
	}
	if _, err := overtimeGridFor(h); err != nil {
		return nil, errors.TemplateError(templates.Honorari, err)
	}
	p, err := store.Layout(templates.Prijevoz)
	if err != nil {
		return nil, err
	}
	if _, err := travelGridFor(p); err != nil {
		return nil, errors.TemplateError(templates.Prijevoz, err)
	}

	return &ExportService{
		templates: store,
		settings:  settings,
		now:       time.Now,
		logger:    logger.With("export"),
	}, nil
}

// ExportOvertime renders the overtime table. Missing settings leave the header empty.
func (s *ExportService) ExportOvertime(ctx context.Context, userID uuid.UUID, req OvertimeRequest) (*Document, error) {
	month := calendar.MonthStart(s.now())
	if m := strings.TrimSpace(req.Month); m != "" {
		parsed, err := calendar.ParseMonth(m, s.now().Location())
		if err != nil {
			return nil, errors.InvalidInput(err.Error())
		}
		month = parsed
	}

	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	doc, res, err := RenderOvertime(s.templates, OvertimeInput{Rows: req.Rows, Month: month, Settings: settings})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render overtime table")
	}
	s.logger.Debug("overtime export for %s: %d rows, %s hours, peak row %.2f", userID, res.Rows, res.GrandTotal, res.PeakRow())
	s.warn(userID, doc)
	return doc, nil
}

// ExportTravel renders the commuting report. Users without settings are rejected.
func (s *ExportService) ExportTravel(ctx context.Context, userID uuid.UUID, req TravelRequest) (*Document, error) {
	settings, err := s.settings.GetSettings(ctx, userID)
	if errors.Is(err, errors.CodeNotFound) {
		return nil, errors.NotConfigured("Missing settings")
	}
	if err != nil {
		return nil, err
	}

	doc, res, err := RenderTravel(s.templates, TravelInput{Rows: req.Rows, Settings: settings, Today: s.now()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render travel report")
	}
	s.logger.Debug("travel export for %s: %d rows, %s km, %s EUR",
		userID, res.Rows, res.TotalKm.String(), res.Amount.StringFixed(2))
	s.warn(userID, doc)
	return doc, nil
}

func (s *ExportService) warn(userID uuid.UUID, doc *Document) {
	for _, w := range doc.Warnings {
		s.logger.Warn("%s for %s: %s", doc.Filename, userID, w)
	}
}

// TravelDefaults builds the editable rows of a month: every working day,
// included, with the user's default transport, overridden by saved rows.
func TravelDefaults(month time.Time, settings *models.Settings, saved []*models.TravelExpense) []report.TravelRow {
	byDate := make(map[string]*models.TravelExpense, len(saved))
	for _, s := range saved {
		byDate[s.WorkDate] = s
	}

	days := calendar.WorkingDays(month)
	rows := make([]report.TravelRow, 0, len(days))
	for _, d := range days {
		row := report.TravelRow{DateISO: d.ISO, Included: true, Transport: settings.Transport()}
		if s, ok := byDate[d.ISO]; ok {
			row.Included = s.Included
			if s.Transport != "" {
				row.Transport = s.Transport
			}
		}
		rows = append(rows, row)
	}
	return rows
}
