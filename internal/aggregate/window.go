package aggregate

import (
	"fmt"
	"time"
)

// MonthWindow computes the calendar boundaries of a month as date
// strings. The local-midnight boundary instants are shifted by the
// caller's UTC offset before conversion so the rendered dates never
// slip across midnight for callers ahead of or behind UTC.
// offsetMinutes follows the JS getTimezoneOffset convention: positive
// west of UTC (UTC = local + offset).
func MonthWindow(year int, month time.Month, offsetMinutes int) (start, end string) {
	zone := time.FixedZone("local", -offsetMinutes*60)

	startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, zone)
	// Day zero of the next month normalizes to this month's last day.
	endOfMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, zone)

	shift := -time.Duration(offsetMinutes) * time.Minute
	start = startOfMonth.Add(shift).UTC().Format(time.DateOnly)
	end = endOfMonth.Add(shift).UTC().Format(time.DateOnly)

	return start, end
}

// CurrentWindow is MonthWindow for now's month in now's zone.
func CurrentWindow(now time.Time) (start, end string) {
	_, offsetSeconds := now.Zone()
	return MonthWindow(now.Year(), now.Month(), -offsetSeconds/60)
}

// ParseMonth parses a "YYYY-MM" selector.
func ParseMonth(selector string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", selector)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month selector %q: %w", selector, err)
	}

	return t.Year(), t.Month(), nil
}
