package excel

import (
	"fmt"
)

// Workbook is one in-memory document opened from a template, addressed
// through its layout.
type Workbook struct {
	layout *Layout
	sheet  *Sheet
}

// Layout returns the bindings the workbook was opened with
func (w *Workbook) Layout() *Layout {
	return w.layout
}

// Sheet returns the bound worksheet
func (w *Workbook) Sheet() *Sheet {
	return w.sheet
}

// SetText writes a string cell by coordinates, keeping the template style
func (w *Workbook) SetText(col, row int, v string) error {
	return w.sheet.SetCellAt(col, row, Text(v))
}

// SetNumber writes a numeric cell by coordinates, keeping the template style
func (w *Workbook) SetNumber(col, row int, v float64) error {
	return w.sheet.SetCellAt(col, row, Number(v))
}

// SetField writes c at a bound field. The field's style applies unless c carries one.
func (w *Workbook) SetField(name string, c Cell) error {
	b, err := w.layout.Field(name)
	if err != nil {
		return err
	}
	if c.Style == nil {
		c.Style = b.Style
	}
	return w.sheet.SetCell(b.Addr, c)
}

// SetFieldf writes a string field through its format; without a format the
// arguments are printed as is.
func (w *Workbook) SetFieldf(name string, args ...interface{}) error {
	b, err := w.layout.Field(name)
	if err != nil {
		return err
	}
	var text string
	if b.Format != "" {
		text = fmt.Sprintf(b.Format, args...)
	} else {
		text = fmt.Sprint(args...)
	}
	return w.sheet.SetCell(b.Addr, Text(text).WithStyle(b.Style))
}

// WriteLabels writes the static labels of the layout
func (w *Workbook) WriteLabels() error {
	for _, lb := range w.layout.Labels {
		if err := w.sheet.SetCell(lb.Addr, Text(lb.Text).WithStyle(lb.Style)); err != nil {
			return err
		}
	}
	return nil
}

// Clear empties a named region
func (w *Workbook) Clear(region string) error {
	r, err := w.layout.Region(region)
	if err != nil {
		return err
	}
	return w.sheet.ClearRegion(r)
}

// Finish runs the formatting pass: region styles, row heights, column widths
// and finally the grid, which merges onto everything written before it.
func (w *Workbook) Finish() error {
	for _, rs := range w.layout.RegionStyles {
		if err := rs.Region.Each(func(addr string) error {
			return w.sheet.ApplyStyle(addr, *rs.Style)
		}); err != nil {
			return fmt.Errorf("style %s: %w", rs.Region, err)
		}
	}
	for _, rh := range w.layout.RowHeights {
		if err := w.sheet.SetRowHeight(rh.First, rh.Last, rh.Height); err != nil {
			return err
		}
	}
	for _, cw := range w.layout.ColWidths {
		if err := w.sheet.SetColWidth(cw.First, cw.Last, cw.Width); err != nil {
			return err
		}
	}
	if w.layout.GridRegion != "" {
		r, err := w.layout.Region(w.layout.GridRegion)
		if err != nil {
			return err
		}
		if err := w.sheet.AddGrid(r, w.layout.GridBorder); err != nil {
			return fmt.Errorf("grid %s: %w", r, err)
		}
	}
	return nil
}

// Bytes serializes the workbook
func (w *Workbook) Bytes() ([]byte, error) {
	buf, err := w.sheet.File().WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", w.layout.Document, err)
	}
	return buf.Bytes(), nil
}

// Close releases the workbook
func (w *Workbook) Close() error {
	return w.sheet.File().Close()
}
