// Package calendar computes the working-day sets and Croatian date labels
// used by both document exports.
package calendar

import (
	"fmt"
	"time"
)

const (
	isoLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// WorkingDay is one Monday-Friday date of a month
type WorkingDay struct {
	Date       time.Time
	ISO        string
	DayOfMonth int
}

var monthsUpper = [12]string{
	"SIJEČANJ",
	"VELJAČA",
	"OŽUJAK",
	"TRAVANJ",
	"SVIBANJ",
	"LIPANJ",
	"SRPANJ",
	"KOLOVOZ",
	"RUJAN",
	"LISTOPAD",
	"STUDENI",
	"PROSINAC",
}

// IsWorkingDay reports whether t falls on Monday through Friday
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// MonthStart returns midnight of the first day of ref's month in ref's location
func MonthStart(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
}

// WorkingDays returns the business days of ref's calendar month in ascending order.
// The result is rebuilt on every call.
func WorkingDays(ref time.Time) []WorkingDay {
	start := MonthStart(ref)
	end := start.AddDate(0, 1, 0)

	days := make([]WorkingDay, 0, 23)
	for cur := start; cur.Before(end); cur = cur.AddDate(0, 0, 1) {
		if !IsWorkingDay(cur) {
			continue
		}
		days = append(days, WorkingDay{
			Date:       cur,
			ISO:        ISODate(cur),
			DayOfMonth: cur.Day(),
		})
	}
	return days
}

// LastWorkingDay walks back from the last calendar day of ref's month over weekends
func LastWorkingDay(ref time.Time) time.Time {
	d := MonthStart(ref).AddDate(0, 1, -1)
	for !IsWorkingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// ISODate formats t as YYYY-MM-DD
func ISODate(t time.Time) string {
	return t.Format(isoLayout)
}

// ParseISO parses a YYYY-MM-DD date at midnight in loc
func ParseISO(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(isoLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date: %q", s)
	}
	return t, nil
}

// FormatHR formats t the Croatian way, DD.MM.YYYY. with the trailing dot
func FormatHR(t time.Time) string {
	return fmt.Sprintf("%02d.%02d.%04d.", t.Day(), int(t.Month()), t.Year())
}

// FormatISOAsHR reformats an ISO date string as DD.MM.YYYY.
func FormatISOAsHR(iso string) (string, error) {
	t, err := ParseISO(iso, time.UTC)
	if err != nil {
		return "", err
	}
	return FormatHR(t), nil
}

// MonthKey formats t's month as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// ParseMonth parses YYYY-MM into the first day of that month in loc
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(monthLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad month: %q", s)
	}
	return t, nil
}

// MonthLabel formats t's month as MM/YYYY
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%02d/%04d", int(t.Month()), t.Year())
}

// MonthNameUpper returns the upper-case Croatian month name
func MonthNameUpper(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthsUpper[m-1]
}
