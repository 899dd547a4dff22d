// Package datetime provides date utility functions at month resolution.
package datetime

import (
	"time"

	"github.com/dmolina/homeplan/pkg/constants"
)

// DateTimeLayout is the month-resolution layout used throughout the
// application for projected dates.
const DateTimeLayout = constants.DateTimeLayout

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// AddMonths returns the month-formatted date the given number of calendar
// months after t. Used to turn a months-to-target count into a projected
// achievement date.
func AddMonths(t time.Time, months int) string {
	return t.AddDate(0, months, 0).Format(DateTimeLayout)
}
