// Package report maps logical overtime and travel rows onto the fixed grid of
// a document template. Mappers only see coordinates; where those come from
// is the caller's business.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Sink receives cell writes by 1-based column and row
type Sink interface {
	SetText(col, row int, v string) error
	SetNumber(col, row int, v float64) error
}

// ParseHours reads a decimal hour count written with either a comma or a dot.
// Blank or unparsable text is 0, and so are NaN and infinities.
func ParseHours(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return v
}
