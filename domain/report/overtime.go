package report

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"evidencija/domain/calendar"
)

// OvertimeRow is one subject/class line of the overtime table. ByDay maps an
// ISO date to the hours held that day, as typed by the user.
type OvertimeRow struct {
	Subject   string            `json:"subject"`
	ClassName string            `json:"className"`
	Hours     string            `json:"hours"`
	ByDay     map[string]string `json:"byDay"`
}

// Blank reports whether the row carries no subject, class or hours
func (r OvertimeRow) Blank() bool {
	return strings.TrimSpace(r.Subject) == "" &&
		strings.TrimSpace(r.ClassName) == "" &&
		strings.TrimSpace(r.Hours) == ""
}

// OvertimeGrid is the physical shape of the overtime table
type OvertimeGrid struct {
	HeaderRow   int
	FirstDayCol int
	DayCapacity int

	FirstRow    int
	RowCapacity int

	SubjectCol int
	ClassCol   int
	HoursCol   int
	TotalCol   int

	GrandTotalCol int
	GrandTotalRow int
}

// OvertimeResult summarizes what was written
type OvertimeResult struct {
	Rows        int
	RowTotals   []decimal.Decimal
	GrandTotal  decimal.Decimal
	DroppedRows int
	DroppedDays int
}

// PeakRow is the largest row total, 0 without rows
func (r OvertimeResult) PeakRow() float64 {
	if len(r.RowTotals) == 0 {
		return 0
	}
	totals := make([]float64, len(r.RowTotals))
	for i, t := range r.RowTotals {
		totals[i] = t.InexactFloat64()
	}
	peak, err := stats.Max(totals)
	if err != nil {
		return 0
	}
	return peak
}

// MapOvertime writes the day header and every non-blank row, then the grand
// total. Day cells are only written for non-zero hours; row totals always are.
// Rows and days beyond the grid capacity are counted, not written.
func MapOvertime(sink Sink, grid OvertimeGrid, rows []OvertimeRow, days []calendar.WorkingDay) (OvertimeResult, error) {
	var res OvertimeResult

	visible := days
	if len(visible) > grid.DayCapacity {
		res.DroppedDays = len(visible) - grid.DayCapacity
		visible = visible[:grid.DayCapacity]
	}

	for i, d := range visible {
		if err := sink.SetNumber(grid.FirstDayCol+i, grid.HeaderRow, float64(d.DayOfMonth)); err != nil {
			return res, fmt.Errorf("day header %s: %w", d.ISO, err)
		}
	}

	for _, r := range rows {
		if r.Blank() {
			continue
		}
		if res.Rows == grid.RowCapacity {
			res.DroppedRows++
			continue
		}
		row := grid.FirstRow + res.Rows

		if err := writeTexts(sink, row, map[int]string{
			grid.SubjectCol: r.Subject,
			grid.ClassCol:   r.ClassName,
			grid.HoursCol:   r.Hours,
		}); err != nil {
			return res, err
		}

		total := decimal.Zero
		for i, d := range visible {
			v := ParseHours(r.ByDay[d.ISO])
			if v.IsZero() {
				continue
			}
			total = total.Add(v)
			if err := sink.SetNumber(grid.FirstDayCol+i, row, v.InexactFloat64()); err != nil {
				return res, fmt.Errorf("row %d day %s: %w", row, d.ISO, err)
			}
		}
		if err := sink.SetNumber(grid.TotalCol, row, total.InexactFloat64()); err != nil {
			return res, fmt.Errorf("row %d total: %w", row, err)
		}

		res.RowTotals = append(res.RowTotals, total)
		res.GrandTotal = res.GrandTotal.Add(total)
		res.Rows++
	}

	if err := sink.SetNumber(grid.GrandTotalCol, grid.GrandTotalRow, res.GrandTotal.InexactFloat64()); err != nil {
		return res, fmt.Errorf("grand total: %w", err)
	}
	return res, nil
}

func writeTexts(sink Sink, row int, cols map[int]string) error {
	for col, v := range cols {
		if err := sink.SetText(col, row, v); err != nil {
			return fmt.Errorf("row %d col %d: %w", row, col, err)
		}
	}
	return nil
}
