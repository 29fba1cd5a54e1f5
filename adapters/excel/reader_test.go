package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("dateISO, included ,transport\n2026-02-02,true,autobus\n,,\n2026-02-03,false\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"dateISO", "included", "transport"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "autobus", table.Rows[0]["transport"])
	assert.Equal(t, "", table.Rows[1]["transport"])
	assert.True(t, table.Has("included"))
	assert.False(t, table.Has("hours"))
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"subject", "className", "hours", "2026-02-02"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Matematika", "5.a", 2, "1,5"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Matematika", table.Rows[0]["subject"])
	assert.Equal(t, "2", table.Rows[0]["hours"])
	assert.Equal(t, "1,5", table.Rows[0]["2026-02-02"])
}

func TestReadTableByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o600))

	table, err := ReadTable(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "2", table.Rows[0]["b"])

	_, err = ReadTable(filepath.Join(dir, "rows.txt"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}
