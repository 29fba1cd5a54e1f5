package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet writes cells and styles into one worksheet of an excelize workbook
type Sheet struct {
	file *excelize.File
	name string

	// merged styles keyed by the style they were merged onto
	styles map[styleKey]int
}

type styleKey struct {
	base  int
	style Style
}

// NewSheet binds to the named worksheet, or to the first one when name is empty
func NewSheet(f *excelize.File, name string) (*Sheet, error) {
	if name == "" {
		name = f.GetSheetName(0)
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", name)
	}
	return &Sheet{file: f, name: name, styles: make(map[styleKey]int)}, nil
}

// Name returns the worksheet name
func (s *Sheet) Name() string {
	return s.name
}

// File exposes the underlying workbook
func (s *Sheet) File() *excelize.File {
	return s.file
}

// SetCell writes exactly one cell. Addresses are not checked against the
// template's used range.
func (s *Sheet) SetCell(addr string, c Cell) error {
	var err error
	switch c.Kind {
	case KindNumber:
		err = s.file.SetCellFloat(s.name, addr, c.Number, -1, 64)
	default:
		err = s.file.SetCellStr(s.name, addr, c.Text)
	}
	if err != nil {
		return fmt.Errorf("set %s!%s: %w", s.name, addr, err)
	}
	if c.Style == nil {
		return nil
	}
	id, err := s.styleID(0, *c.Style)
	if err != nil {
		return err
	}
	return s.file.SetCellStyle(s.name, addr, addr, id)
}

// SetCellAt writes one cell by 1-based column and row
func (s *Sheet) SetCellAt(col, row int, c Cell) error {
	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return s.SetCell(addr, c)
}

// Value reads a cell's formatted value
func (s *Sheet) Value(addr string) (string, error) {
	return s.file.GetCellValue(s.name, addr)
}

// ClearRegion drops the value and style of every cell in r. Clearing an
// empty region is a no-op.
func (s *Sheet) ClearRegion(r Region) error {
	return r.Each(func(addr string) error {
		if err := s.file.SetCellValue(s.name, addr, nil); err != nil {
			return err
		}
		return s.file.SetCellStyle(s.name, addr, addr, 0)
	})
}

// ApplyStyle merges st onto the cell's current style
func (s *Sheet) ApplyStyle(addr string, st Style) error {
	base, err := s.file.GetCellStyle(s.name, addr)
	if err != nil {
		return err
	}
	id, err := s.styleID(base, st)
	if err != nil {
		return err
	}
	return s.file.SetCellStyle(s.name, addr, addr, id)
}

// AddGrid makes sure every cell of r exists and merges a uniform border onto it
func (s *Sheet) AddGrid(r Region, border string) error {
	if BorderIndex(border) == 0 {
		return fmt.Errorf("unknown border style %q", border)
	}
	return r.Each(func(addr string) error {
		return s.ApplyStyle(addr, Style{Border: border})
	})
}

// SetRowHeight sets the height of rows first..last in points
func (s *Sheet) SetRowHeight(first, last int, height float64) error {
	for row := first; row <= last; row++ {
		if err := s.file.SetRowHeight(s.name, row, height); err != nil {
			return err
		}
	}
	return nil
}

// SetColWidth sets the width of columns first..last, given as letters
func (s *Sheet) SetColWidth(first, last string, width float64) error {
	return s.file.SetColWidth(s.name, first, last, width)
}

func (s *Sheet) styleID(base int, st Style) (int, error) {
	key := styleKey{base: base, style: st}
	if id, ok := s.styles[key]; ok {
		return id, nil
	}

	var existing *excelize.Style
	if base != 0 {
		var err error
		if existing, err = s.file.GetStyle(base); err != nil {
			return 0, err
		}
	}

	id, err := s.file.NewStyle(MergeStyle(existing, st))
	if err != nil {
		return 0, err
	}
	s.styles[key] = id
	return id, nil
}
