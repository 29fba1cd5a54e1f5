package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDaysFebruary2026(t *testing.T) {
	// February 2026 has 28 days and starts on a Sunday.
	ref := date(2026, time.February, 17)
	require.Equal(t, time.Sunday, date(2026, time.February, 1).Weekday())

	days := WorkingDays(ref)

	require.Len(t, days, 20)
	assert.Equal(t, "2026-02-02", days[0].ISO)
	assert.Equal(t, 2, days[0].DayOfMonth)
	assert.Equal(t, time.Monday, days[0].Date.Weekday())
	assert.Equal(t, "2026-02-27", days[len(days)-1].ISO)
}

func TestWorkingDaysProperties(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for month := time.January; month <= time.December; month++ {
			days := WorkingDays(date(year, month, 15))
			require.NotEmpty(t, days)

			seen := map[string]bool{}
			for i, d := range days {
				assert.True(t, IsWorkingDay(d.Date), "%s is a weekend", d.ISO)
				assert.Equal(t, month, d.Date.Month())
				assert.False(t, seen[d.ISO], "duplicate %s", d.ISO)
				seen[d.ISO] = true

				if i == 0 {
					continue
				}
				prev := days[i-1].Date
				assert.True(t, d.Date.After(prev))
				// consecutive weekdays are one day apart, or three across a weekend
				gap := int(d.Date.Sub(prev).Hours() / 24)
				if prev.Weekday() == time.Friday {
					assert.Equal(t, 3, gap, "%s -> %s", days[i-1].ISO, d.ISO)
				} else {
					assert.Equal(t, 1, gap, "%s -> %s", days[i-1].ISO, d.ISO)
				}
			}
		}
	}
}

func TestWorkingDaysIsRestartable(t *testing.T) {
	ref := date(2026, time.March, 1)
	assert.Equal(t, WorkingDays(ref), WorkingDays(ref))
}

func TestLastWorkingDay(t *testing.T) {
	cases := []struct {
		ref  time.Time
		want string
	}{
		{date(2026, time.February, 3), "2026-02-27"}, // 28th is a Saturday
		{date(2026, time.May, 10), "2026-05-29"},     // 31st is a Sunday
		{date(2026, time.March, 2), "2026-03-31"},    // Tuesday
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ISODate(LastWorkingDay(tc.ref)))
	}
}

func TestFormatHR(t *testing.T) {
	assert.Equal(t, "02.02.2026.", FormatHR(date(2026, time.February, 2)))

	got, err := FormatISOAsHR("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, "31.12.2026.", got)

	_, err = FormatISOAsHR("31.12.2026")
	assert.Error(t, err)
}

func TestMonthHelpers(t *testing.T) {
	m, err := ParseMonth("2026-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 1), m)
	assert.Equal(t, "2026-02", MonthKey(m))
	assert.Equal(t, "02/2026", MonthLabel(m))
	assert.Equal(t, "VELJAČA", MonthNameUpper(m.Month()))
	assert.Equal(t, "", MonthNameUpper(time.Month(13)))

	_, err = ParseMonth("2026/02", time.UTC)
	assert.Error(t, err)
}
