package excel

import (
	"github.com/xuri/excelize/v2"
)

// Kind tags a cell value. Spreadsheet applications format and compute on the
// tag, so totals are always KindNumber and labels KindString.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

// Cell is a tagged value plus an optional style. A nil Style keeps whatever
// style the template already carries at that address.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
	Style  *Style
}

// Text creates a string cell
func Text(v string) Cell {
	return Cell{Kind: KindString, Text: v}
}

// Number creates a numeric cell
func Number(v float64) Cell {
	return Cell{Kind: KindNumber, Number: v}
}

// WithStyle returns a copy of c carrying style s
func (c Cell) WithStyle(s *Style) Cell {
	c.Style = s
	return c
}

// Style is the subset of cell formatting the templates need. Zero fields mean
// "leave as is" when merged onto an existing style.
type Style struct {
	Bold       bool    `yaml:"bold"`
	FontSize   float64 `yaml:"fontSize"`
	Horizontal string  `yaml:"horizontal"`
	Vertical   string  `yaml:"vertical"`
	WrapText   bool    `yaml:"wrap"`
	Border     string  `yaml:"border"`
}

var borderStyles = map[string]int{
	"thin":   1,
	"medium": 2,
	"dashed": 3,
	"dotted": 4,
	"thick":  5,
	"double": 6,
}

// BorderIndex maps a border name to excelize's border style index, 0 when unknown
func BorderIndex(name string) int {
	return borderStyles[name]
}

// MergeStyle overlays the non-zero attributes of incoming onto a copy of
// existing. existing may be nil. Attributes incoming does not set (fill,
// number format, font family, alignment when only a border is merged) survive.
func MergeStyle(existing *excelize.Style, incoming Style) *excelize.Style {
	merged := excelize.Style{}
	if existing != nil {
		merged = *existing
	}

	if incoming.Bold || incoming.FontSize > 0 {
		font := excelize.Font{}
		if merged.Font != nil {
			font = *merged.Font
		}
		if incoming.Bold {
			font.Bold = true
		}
		if incoming.FontSize > 0 {
			font.Size = incoming.FontSize
		}
		merged.Font = &font
	}

	if incoming.Horizontal != "" || incoming.Vertical != "" || incoming.WrapText {
		align := excelize.Alignment{}
		if merged.Alignment != nil {
			align = *merged.Alignment
		}
		if incoming.Horizontal != "" {
			align.Horizontal = incoming.Horizontal
		}
		if incoming.Vertical != "" {
			align.Vertical = incoming.Vertical
		}
		if incoming.WrapText {
			align.WrapText = true
		}
		merged.Alignment = &align
	}

	if idx := BorderIndex(incoming.Border); idx > 0 {
		merged.Border = []excelize.Border{
			{Type: "top", Color: "000000", Style: idx},
			{Type: "bottom", Color: "000000", Style: idx},
			{Type: "left", Color: "000000", Style: idx},
			{Type: "right", Color: "000000", Style: idx},
		}
	} else if len(merged.Border) > 0 {
		merged.Border = append([]excelize.Border(nil), merged.Border...)
	}

	return &merged
}
