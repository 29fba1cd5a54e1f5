package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evidencija/adapters/excel"
	"evidencija/internal/errors"
)

func TestOvertimeRowsFromTable(t *testing.T) {
	table, err := excel.ReadCSV(strings.NewReader(
		"subject,className,hours,2026-02-02,2026-02-03,note\n" +
			"Matematika,5.a,2,\"1,5\",,x\n"))
	require.NoError(t, err)

	rows, err := OvertimeRowsFromTable(table)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Matematika", rows[0].Subject)
	assert.Equal(t, "5.a", rows[0].ClassName)
	assert.Equal(t, map[string]string{"2026-02-02": "1,5"}, rows[0].ByDay)

	_, err = OvertimeRowsFromTable(&excel.Table{Headers: []string{"hours"}})
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}

func TestTravelRowsFromTable(t *testing.T) {
	table, err := excel.ReadCSV(strings.NewReader(
		"dateISO,included,transport\n" +
			"2026-02-02,,\n" +
			"2026-02-03,ne,autobus\n" +
			"2026-02-04,true,vlak\n"))
	require.NoError(t, err)

	rows, err := TravelRowsFromTable(table, testSettings())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Included)
	assert.Equal(t, "osobni automobil", rows[0].Transport)
	assert.False(t, rows[1].Included)
	assert.Equal(t, "vlak", rows[2].Transport)

	bad, err := excel.ReadCSV(strings.NewReader("dateISO,included\n2026-02-02,možda\n"))
	require.NoError(t, err)
	_, err = TravelRowsFromTable(bad, nil)
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}
