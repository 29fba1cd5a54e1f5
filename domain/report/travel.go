package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"evidencija/domain/calendar"
)

// TravelRow is one working day of the commuting report
type TravelRow struct {
	DateISO   string `json:"dateISO"`
	Included  bool   `json:"included"`
	Transport string `json:"transport"`
}

// TravelGrid is the physical shape of the commuting table
type TravelGrid struct {
	FirstRow    int
	RowCapacity int

	DateCol      int
	ToCol        int
	FromCol      int
	TransportCol int
}

// Rates are the per-user distances and price a travel report is computed with
type Rates struct {
	DistanceTo   decimal.Decimal
	DistanceFrom decimal.Decimal
	PricePerKm   decimal.Decimal
}

// TravelResult holds the totals over the rows actually written
type TravelResult struct {
	Rows        int
	SumTo       decimal.Decimal
	SumFrom     decimal.Decimal
	TotalKm     decimal.Decimal
	Amount      decimal.Decimal
	DroppedRows int
}

// MapTravel writes included rows packed from grid.FirstRow. Excluded rows take
// no physical row. Amount is PricePerKm * TotalKm rounded half away from zero
// to cents.
func MapTravel(sink Sink, grid TravelGrid, rows []TravelRow, rates Rates) (TravelResult, error) {
	res := TravelResult{
		SumTo:   decimal.Zero,
		SumFrom: decimal.Zero,
	}
	to := rates.DistanceTo.InexactFloat64()
	from := rates.DistanceFrom.InexactFloat64()

	for _, r := range rows {
		if !r.Included {
			continue
		}
		if res.Rows == grid.RowCapacity {
			res.DroppedRows++
			continue
		}
		row := grid.FirstRow + res.Rows

		date, err := calendar.FormatISOAsHR(r.DateISO)
		if err != nil {
			date = r.DateISO
		}
		if err := sink.SetText(grid.DateCol, row, date); err != nil {
			return res, fmt.Errorf("row %d date: %w", row, err)
		}
		if err := sink.SetNumber(grid.ToCol, row, to); err != nil {
			return res, fmt.Errorf("row %d distance to: %w", row, err)
		}
		if err := sink.SetNumber(grid.FromCol, row, from); err != nil {
			return res, fmt.Errorf("row %d distance from: %w", row, err)
		}
		if err := sink.SetText(grid.TransportCol, row, r.Transport); err != nil {
			return res, fmt.Errorf("row %d transport: %w", row, err)
		}

		res.SumTo = res.SumTo.Add(rates.DistanceTo)
		res.SumFrom = res.SumFrom.Add(rates.DistanceFrom)
		res.Rows++
	}

	res.TotalKm = res.SumTo.Add(res.SumFrom)
	res.Amount = rates.PricePerKm.Mul(res.TotalKm).Round(2)
	return res, nil
}
