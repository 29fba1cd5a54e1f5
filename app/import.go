package app

import (
	"strconv"
	"strings"

	"evidencija/adapters/excel"
	"evidencija/domain/calendar"
	"evidencija/domain/report"
	"evidencija/internal/errors"
	"evidencija/models"
)

// Column headers understood by the importers
const (
	ColumnSubject   = "subject"
	ColumnClassName = "className"
	ColumnHours     = "hours"
	ColumnDate      = "dateISO"
	ColumnIncluded  = "included"
	ColumnTransport = "transport"
)

// OvertimeRowsFromTable reads overtime rows from an imported sheet. Every
// column headed by an ISO date becomes a day entry.
func OvertimeRowsFromTable(t *excel.Table) ([]report.OvertimeRow, error) {
	if !t.Has(ColumnSubject) {
		return nil, errors.InvalidInput("missing column " + ColumnSubject)
	}

	var days []string
	for _, h := range t.Headers {
		if _, err := calendar.ParseISO(h, nil); err == nil {
			days = append(days, h)
		}
	}

	rows := make([]report.OvertimeRow, 0, len(t.Rows))
	for _, raw := range t.Rows {
		row := report.OvertimeRow{
			Subject:   raw[ColumnSubject],
			ClassName: raw[ColumnClassName],
			Hours:     raw[ColumnHours],
			ByDay:     make(map[string]string, len(days)),
		}
		for _, d := range days {
			if v := raw[d]; v != "" {
				row.ByDay[d] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TravelRowsFromTable reads travel rows from an imported sheet. A missing
// included cell counts as included; a missing transport takes the default.
func TravelRowsFromTable(t *excel.Table, settings *models.Settings) ([]report.TravelRow, error) {
	if !t.Has(ColumnDate) {
		return nil, errors.InvalidInput("missing column " + ColumnDate)
	}

	rows := make([]report.TravelRow, 0, len(t.Rows))
	for _, raw := range t.Rows {
		row := report.TravelRow{
			DateISO:   raw[ColumnDate],
			Included:  true,
			Transport: raw[ColumnTransport],
		}
		if v := strings.TrimSpace(raw[ColumnIncluded]); v != "" {
			included, err := parseIncluded(v)
			if err != nil {
				return nil, errors.InvalidInput("bad included value " + strconv.Quote(v) + " on " + row.DateISO)
			}
			row.Included = included
		}
		if row.Transport == "" {
			row.Transport = settings.Transport()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseIncluded(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "da", "x":
		return true, nil
	case "ne":
		return false, nil
	}
	return strconv.ParseBool(v)
}
