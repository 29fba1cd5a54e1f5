package app

import (
	"time"

	"evidencija/adapters/excel"
	"evidencija/domain/calendar"
	"evidencija/domain/report"
	"evidencija/models"
	"evidencija/templates"
)

// OvertimeInput is everything the overtime table is rendered from.
// Settings may be nil; header fields then stay empty.
type OvertimeInput struct {
	Rows     []report.OvertimeRow
	Month    time.Time
	Settings *models.Settings
}

var (
	overtimeFields  = []string{"organisation", "workAddress", "month", "teacher", "grandTotal"}
	overtimeColumns = []string{"subject", "className", "hours", "total"}
	overtimeRegions = []string{"dayHeader", "data"}
)

// overtimeGridFor derives the mapper grid from the bound layout
func overtimeGridFor(l *excel.Layout) (report.OvertimeGrid, error) {
	if err := l.Require(overtimeFields, overtimeColumns, overtimeRegions); err != nil {
		return report.OvertimeGrid{}, err
	}
	header, _ := l.Region("dayHeader")
	data, _ := l.Region("data")
	grand, _ := l.Field("grandTotal")
	subject, _ := l.Column("subject")
	class, _ := l.Column("className")
	hours, _ := l.Column("hours")
	total, _ := l.Column("total")

	return report.OvertimeGrid{
		HeaderRow:     header.FirstRow,
		FirstDayCol:   header.FirstCol,
		DayCapacity:   header.Cols(),
		FirstRow:      data.FirstRow,
		RowCapacity:   data.Rows(),
		SubjectCol:    subject,
		ClassCol:      class,
		HoursCol:      hours,
		TotalCol:      total,
		GrandTotalCol: grand.Col,
		GrandTotalRow: grand.Row,
	}, nil
}

// RenderOvertime fills the overtime hours template
func RenderOvertime(store *excel.TemplateStore, in OvertimeInput) (*Document, report.OvertimeResult, error) {
	var res report.OvertimeResult

	wb, err := store.Open(templates.Honorari)
	if err != nil {
		return nil, res, err
	}
	defer wb.Close()

	grid, err := overtimeGridFor(wb.Layout())
	if err != nil {
		return nil, res, err
	}

	var fullName, organisation, workAddress string
	if in.Settings != nil {
		fullName = in.Settings.FullName
		organisation = in.Settings.OrganisationName
		workAddress = in.Settings.WorkAddress
	}

	if err := wb.WriteLabels(); err != nil {
		return nil, res, err
	}
	for name, v := range map[string]string{
		"teacher":      fullName,
		"organisation": organisation,
		"workAddress":  workAddress,
		"month":        calendar.MonthLabel(in.Month),
	} {
		if err := wb.SetFieldf(name, v); err != nil {
			return nil, res, err
		}
	}

	for _, region := range overtimeRegions {
		if err := wb.Clear(region); err != nil {
			return nil, res, err
		}
	}

	res, err = report.MapOvertime(wb, grid, in.Rows, calendar.WorkingDays(in.Month))
	if err != nil {
		return nil, res, err
	}

	if err := wb.Finish(); err != nil {
		return nil, res, err
	}

	var warnings []string
	if res.DroppedDays > 0 {
		warnings = append(warnings, droppedWarning(res.DroppedDays, "working days", grid.DayCapacity))
	}
	if res.DroppedRows > 0 {
		warnings = append(warnings, droppedWarning(res.DroppedRows, "rows", grid.RowCapacity))
	}

	doc, err := newDocument(wb, warnings)
	return doc, res, err
}
