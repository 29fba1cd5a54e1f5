package app

import (
	"time"

	"evidencija/adapters/excel"
	"evidencija/domain/calendar"
	"evidencija/domain/report"
	"evidencija/models"
	"evidencija/templates"
)

// TravelInput is everything the commuting report is rendered from.
// Settings must be present.
type TravelInput struct {
	Rows     []report.TravelRow
	Settings *models.Settings
	// Today is used for the report month when no row carries a valid date
	Today time.Time
}

var (
	travelFields = []string{
		"employee", "workAddress", "homeAddress", "monthHeader",
		"sumTo", "sumFrom", "totalKm", "submitted", "pricePerKm", "amount",
	}
	travelColumns = []string{"date", "toWork", "fromWork", "transport"}
	travelRegions = []string{"data"}
)

func travelGridFor(l *excel.Layout) (report.TravelGrid, error) {
	if err := l.Require(travelFields, travelColumns, travelRegions); err != nil {
		return report.TravelGrid{}, err
	}
	data, _ := l.Region("data")
	date, _ := l.Column("date")
	to, _ := l.Column("toWork")
	from, _ := l.Column("fromWork")
	transport, _ := l.Column("transport")

	return report.TravelGrid{
		FirstRow:     data.FirstRow,
		RowCapacity:  data.Rows(),
		DateCol:      date,
		ToCol:        to,
		FromCol:      from,
		TransportCol: transport,
	}, nil
}

// ReportMonth is the month of the first row's date, or of today
func (in TravelInput) ReportMonth() time.Time {
	if len(in.Rows) > 0 {
		if t, err := calendar.ParseISO(in.Rows[0].DateISO, in.Today.Location()); err == nil {
			return calendar.MonthStart(t)
		}
	}
	return calendar.MonthStart(in.Today)
}

// RenderTravel fills the commuting expense template
func RenderTravel(store *excel.TemplateStore, in TravelInput) (*Document, report.TravelResult, error) {
	var res report.TravelResult

	wb, err := store.Open(templates.Prijevoz)
	if err != nil {
		return nil, res, err
	}
	defer wb.Close()

	grid, err := travelGridFor(wb.Layout())
	if err != nil {
		return nil, res, err
	}

	s := in.Settings
	rates := report.Rates{
		DistanceTo:   models.OrZero(s.DistanceToWork),
		DistanceFrom: models.OrZero(s.DistanceFromWork),
		PricePerKm:   models.OrZero(s.PricePerKm),
	}
	month := in.ReportMonth()

	if err := wb.WriteLabels(); err != nil {
		return nil, res, err
	}
	if err := wb.SetFieldf("employee", s.FullName); err != nil {
		return nil, res, err
	}
	if err := wb.SetFieldf("workAddress", s.WorkAddress); err != nil {
		return nil, res, err
	}
	if err := wb.SetFieldf("homeAddress", s.HomeAddress); err != nil {
		return nil, res, err
	}
	if err := wb.SetFieldf("monthHeader", calendar.MonthNameUpper(month.Month()), month.Year()); err != nil {
		return nil, res, err
	}
	if err := wb.SetField("pricePerKm", excel.Number(rates.PricePerKm.InexactFloat64())); err != nil {
		return nil, res, err
	}

	if err := wb.Clear("data"); err != nil {
		return nil, res, err
	}

	res, err = report.MapTravel(wb, grid, in.Rows, rates)
	if err != nil {
		return nil, res, err
	}

	for name, v := range map[string]float64{
		"sumTo":   res.SumTo.InexactFloat64(),
		"sumFrom": res.SumFrom.InexactFloat64(),
		"totalKm": res.TotalKm.InexactFloat64(),
	} {
		if err := wb.SetField(name, excel.Number(v)); err != nil {
			return nil, res, err
		}
	}
	if err := wb.SetFieldf("submitted", calendar.FormatHR(calendar.LastWorkingDay(month))); err != nil {
		return nil, res, err
	}
	if err := wb.SetFieldf("amount", res.Amount.StringFixed(2)); err != nil {
		return nil, res, err
	}

	if err := wb.Finish(); err != nil {
		return nil, res, err
	}

	var warnings []string
	if res.DroppedRows > 0 {
		warnings = append(warnings, droppedWarning(res.DroppedRows, "rows", grid.RowCapacity))
	}

	doc, err := newDocument(wb, warnings)
	return doc, res, err
}
