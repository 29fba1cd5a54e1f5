package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawRow maps trimmed header names to the trimmed cell text of one row
type RawRow map[string]string

// Table is the header row and data rows of an imported sheet
type Table struct {
	Headers []string
	Rows    []RawRow
}

// Has reports whether the table carries a column
func (t *Table) Has(header string) bool {
	for _, h := range t.Headers {
		if h == header {
			return true
		}
	}
	return false
}

// ReadTable reads the first worksheet of an .xlsx file, or a .csv file
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// ReadXLSX reads the first worksheet of a workbook
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return processRows(rows)
}

// ReadCSV reads comma separated text with a header line
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return processRows(rows)
}

// processRows keys every data row by header. Rows with no text are skipped;
// cells past the last header are ignored.
func processRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	t := &Table{Headers: headers}
	for _, row := range rows[1:] {
		raw := make(RawRow, len(headers))
		empty := true
		for j, cell := range row {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			raw[headers[j]] = cell
		}
		if !empty {
			t.Rows = append(t.Rows, raw)
		}
	}
	return t, nil
}
