package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Binding is a resolved template address with its optional style and text format
type Binding struct {
	Addr   string
	Col    int
	Row    int
	Style  *Style
	Format string
}

// Label is a static text written on every render
type Label struct {
	Binding
	Text string
}

// RowHeight applies a height to a span of rows
type RowHeight struct {
	First, Last int
	Height      float64
}

// ColWidth applies a width to a span of columns
type ColWidth struct {
	First, Last string
	Width       float64
}

// RegionStyle merges a named style onto every cell of a region after the data is written
type RegionStyle struct {
	Region Region
	Style  *Style
}

// Layout binds logical field, column and region names of one document type to
// fixed template coordinates. It is parsed once and read-only afterwards.
type Layout struct {
	Document string
	Template string
	Sheet    string
	Filename string

	styles  map[string]*Style
	fields  map[string]Binding
	columns map[string]int
	regions map[string]Region

	Labels       []Label
	RegionStyles []RegionStyle
	RowHeights   []RowHeight
	ColWidths    []ColWidth
	GridRegion   string
	GridBorder   string
}

type layoutDoc struct {
	Document string            `yaml:"document"`
	Template string            `yaml:"template"`
	Sheet    string            `yaml:"sheet"`
	Filename string            `yaml:"filename"`
	Styles   map[string]Style  `yaml:"styles"`
	Fields   map[string]field  `yaml:"fields"`
	Columns  map[string]string `yaml:"columns"`
	Regions  map[string]string `yaml:"regions"`
	Labels   []struct {
		Cell  string `yaml:"cell"`
		Text  string `yaml:"text"`
		Style string `yaml:"style"`
	} `yaml:"labels"`
	RegionStyles []struct {
		Region string `yaml:"region"`
		Style  string `yaml:"style"`
	} `yaml:"regionStyles"`
	RowHeights []struct {
		Rows   string  `yaml:"rows"`
		Height float64 `yaml:"height"`
	} `yaml:"rowHeights"`
	ColWidths []struct {
		Cols  string  `yaml:"cols"`
		Width float64 `yaml:"width"`
	} `yaml:"colWidths"`
	Grid *struct {
		Range  string `yaml:"range"`
		Border string `yaml:"border"`
	} `yaml:"grid"`
}

type field struct {
	Cell   string `yaml:"cell"`
	Style  string `yaml:"style"`
	Format string `yaml:"format"`
}

// ParseLayout decodes and resolves a YAML binding file
func ParseLayout(data []byte) (*Layout, error) {
	var doc layoutDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if doc.Document == "" || doc.Template == "" {
		return nil, fmt.Errorf("layout needs document and template")
	}

	l := &Layout{
		Document: doc.Document,
		Template: doc.Template,
		Sheet:    doc.Sheet,
		Filename: doc.Filename,
		styles:   make(map[string]*Style, len(doc.Styles)),
		fields:   make(map[string]Binding, len(doc.Fields)),
		columns:  make(map[string]int, len(doc.Columns)),
		regions:  make(map[string]Region, len(doc.Regions)),
	}
	if l.Filename == "" {
		l.Filename = doc.Document + ".xlsx"
	}

	for name, st := range doc.Styles {
		st := st
		l.styles[name] = &st
	}

	for name, f := range doc.Fields {
		b, err := l.bind(f.Cell, f.Style)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		b.Format = f.Format
		l.fields[name] = b
	}

	for name, letters := range doc.Columns {
		col, err := excelize.ColumnNameToNumber(letters)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		l.columns[name] = col
	}

	for name, rng := range doc.Regions {
		r, err := ParseRegion(rng)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", name, err)
		}
		l.regions[name] = r
	}

	for _, lb := range doc.Labels {
		b, err := l.bind(lb.Cell, lb.Style)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", lb.Text, err)
		}
		l.Labels = append(l.Labels, Label{Binding: b, Text: lb.Text})
	}

	for _, rs := range doc.RegionStyles {
		r, ok := l.regions[rs.Region]
		if !ok {
			return nil, fmt.Errorf("region style: region %q not defined", rs.Region)
		}
		st := l.Style(rs.Style)
		if st == nil {
			return nil, fmt.Errorf("region style: style %q not defined", rs.Style)
		}
		l.RegionStyles = append(l.RegionStyles, RegionStyle{Region: r, Style: st})
	}

	for _, rh := range doc.RowHeights {
		first, last, err := parseSpan(rh.Rows)
		if err != nil {
			return nil, fmt.Errorf("row heights %q: %w", rh.Rows, err)
		}
		l.RowHeights = append(l.RowHeights, RowHeight{First: first, Last: last, Height: rh.Height})
	}

	for _, cw := range doc.ColWidths {
		first, last, _ := strings.Cut(cw.Cols, ":")
		if last == "" {
			last = first
		}
		if _, err := excelize.ColumnNameToNumber(first); err != nil {
			return nil, fmt.Errorf("col widths %q: %w", cw.Cols, err)
		}
		if _, err := excelize.ColumnNameToNumber(last); err != nil {
			return nil, fmt.Errorf("col widths %q: %w", cw.Cols, err)
		}
		l.ColWidths = append(l.ColWidths, ColWidth{First: first, Last: last, Width: cw.Width})
	}

	if doc.Grid != nil {
		if _, ok := l.regions[doc.Grid.Range]; !ok {
			return nil, fmt.Errorf("grid region %q not defined", doc.Grid.Range)
		}
		if BorderIndex(doc.Grid.Border) == 0 {
			return nil, fmt.Errorf("grid border %q unknown", doc.Grid.Border)
		}
		l.GridRegion = doc.Grid.Range
		l.GridBorder = doc.Grid.Border
	}

	return l, nil
}

func (l *Layout) bind(cell, style string) (Binding, error) {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return Binding{}, err
	}
	b := Binding{Addr: cell, Col: col, Row: row}
	if style != "" {
		st, ok := l.styles[style]
		if !ok {
			return Binding{}, fmt.Errorf("style %q not defined", style)
		}
		b.Style = st
	}
	return b, nil
}

func parseSpan(s string) (int, int, error) {
	var first, last int
	if strings.Contains(s, ":") {
		if _, err := fmt.Sscanf(s, "%d:%d", &first, &last); err != nil {
			return 0, 0, err
		}
	} else {
		if _, err := fmt.Sscanf(s, "%d", &first); err != nil {
			return 0, 0, err
		}
		last = first
	}
	if first < 1 || last < first {
		return 0, 0, fmt.Errorf("invalid span")
	}
	return first, last, nil
}

// Style returns a named style, nil when undefined
func (l *Layout) Style(name string) *Style {
	if name == "" {
		return nil
	}
	return l.styles[name]
}

// Field resolves a logical field name
func (l *Layout) Field(name string) (Binding, error) {
	b, ok := l.fields[name]
	if !ok {
		return Binding{}, fmt.Errorf("%s: field %q not bound", l.Document, name)
	}
	return b, nil
}

// Column resolves a logical column name to its 1-based index
func (l *Layout) Column(name string) (int, error) {
	c, ok := l.columns[name]
	if !ok {
		return 0, fmt.Errorf("%s: column %q not bound", l.Document, name)
	}
	return c, nil
}

// Region resolves a logical region name
func (l *Layout) Region(name string) (Region, error) {
	r, ok := l.regions[name]
	if !ok {
		return Region{}, fmt.Errorf("%s: region %q not bound", l.Document, name)
	}
	return r, nil
}

// Require checks that every named field, column and region is bound, so a
// template/binding mismatch fails at startup rather than mid-export.
func (l *Layout) Require(fields, columns, regions []string) error {
	for _, f := range fields {
		if _, err := l.Field(f); err != nil {
			return err
		}
	}
	for _, c := range columns {
		if _, err := l.Column(c); err != nil {
			return err
		}
	}
	for _, r := range regions {
		if _, err := l.Region(r); err != nil {
			return err
		}
	}
	return nil
}
