package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical date text format: 4-digit year, 2-digit
// month, 2-digit day, joined by a slash.
const DateLayout = "2006/01/02"

// altDateSeparator is tolerated on input and normalized before parsing.
const altDateSeparator = "."

// FormatDate renders a time in the canonical date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a canonical date string. A dotted separator is
// accepted and mapped to the canonical slash first. The result carries
// date-only precision in UTC.
func ParseDate(s string) (time.Time, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), altDateSeparator, "/")
	t, err := time.ParseInLocation(DateLayout, normalized, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// TruncateToDay strips the time-of-day component, keeping date precision.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
