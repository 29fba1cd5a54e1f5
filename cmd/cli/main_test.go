package main

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

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func cellOf(t *testing.T, path, addr string) string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(f.GetSheetName(0), addr)
	require.NoError(t, err)
	return v
}

const settingsYAML = `fullName: Ana Horvat
organisationName: OŠ Vladimira Nazora
homeAddress: Ilica 1, Zagreb
workAddress: Savska 5, Zagreb
distanceToWork: 10
distanceFromWork: 12
pricePerKm: "0,5"
`

func TestWorkdays(t *testing.T) {
	out, _, err := execute(t, "workdays", "--month", "2026-02")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 21)
	assert.Equal(t, "2026-02-02  02.02.2026.", lines[0])
	assert.Equal(t, "02/2026: 20 working days", lines[20])
}

func TestWorkdaysBadMonth(t *testing.T) {
	_, _, err := execute(t, "workdays", "--month", "February")
	assert.Error(t, err)
}

func TestRenderTravelFromCSV(t *testing.T) {
	dir := t.TempDir()
	rows := writeFile(t, dir, "feb.csv", "dateISO,included,transport\n"+
		"2026-02-02,true,\n2026-02-03,false,\n2026-02-04,true,autobus\n2026-02-05,ne,\n2026-02-06,da,vlak\n")
	settings := writeFile(t, dir, "me.yaml", settingsYAML)
	out := filepath.Join(dir, "prijevoz.xlsx")

	stdout, stderr, err := execute(t, "render", "prijevoz", "--rows", rows, "--settings", settings, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+out)
	assert.Empty(t, stderr)

	assert.Equal(t, "02.02.2026.", cellOf(t, out, "A10"))
	assert.Equal(t, "osobni automobil", cellOf(t, out, "D10"))
	assert.Equal(t, "06.02.2026.", cellOf(t, out, "A12"))
	assert.Equal(t, "66", cellOf(t, out, "D34"))
	assert.Equal(t, "Odobreni iznos za isplatu: 33.00 EUR", cellOf(t, out, "A43"))
}

func TestRenderTravelNeedsSettings(t *testing.T) {
	_, _, err := execute(t, "render", "prijevoz", "--out", filepath.Join(t.TempDir(), "x.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing settings")
}

func TestRenderOvertimeFromJSON(t *testing.T) {
	dir := t.TempDir()
	rows := writeFile(t, dir, "rows.json",
		`{"rows":[{"subject":"Matematika","className":"5.a","hours":"2","byDay":{"2026-02-02":"1,5"}}]}`)
	out := filepath.Join(dir, "honorari.xlsx")

	_, _, err := execute(t, "render", "honorari", "--rows", rows, "--month", "2026-02", "--out", out)
	require.NoError(t, err)

	assert.Equal(t, "Matematika", cellOf(t, out, "A12"))
	assert.Equal(t, "1.5", cellOf(t, out, "D12"))
	assert.Equal(t, "1.5", cellOf(t, out, "AB20"))
	assert.Equal(t, "", cellOf(t, out, "F7"))
}

func TestRenderUnknownDocument(t *testing.T) {
	_, _, err := execute(t, "render", "putni-nalog", "--out", filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Error(t, err)
}
