package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Region is an inclusive rectangle of cells, 1-based like excelize coordinates
type Region struct {
	FirstCol, FirstRow int
	LastCol, LastRow   int
}

// ParseRegion parses "A12:AC19" (or a single cell "K5")
func ParseRegion(s string) (Region, error) {
	from, to, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		to = from
	}
	c1, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return Region{}, fmt.Errorf("bad range %q: %w", s, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return Region{}, fmt.Errorf("bad range %q: %w", s, err)
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return Region{FirstCol: c1, FirstRow: r1, LastCol: c2, LastRow: r2}, nil
}

// Rows is the number of rows the region spans
func (r Region) Rows() int {
	return r.LastRow - r.FirstRow + 1
}

// Cols is the number of columns the region spans
func (r Region) Cols() int {
	return r.LastCol - r.FirstCol + 1
}

// String formats the region back as A1:B2
func (r Region) String() string {
	from, _ := excelize.CoordinatesToCellName(r.FirstCol, r.FirstRow)
	to, _ := excelize.CoordinatesToCellName(r.LastCol, r.LastRow)
	return from + ":" + to
}

// Each calls fn for every cell address in row-major order, stopping at the first error
func (r Region) Each(fn func(addr string) error) error {
	for row := r.FirstRow; row <= r.LastRow; row++ {
		for col := r.FirstCol; col <= r.LastCol; col++ {
			addr, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			if err := fn(addr); err != nil {
				return err
			}
		}
	}
	return nil
}
