// Package dateutils provides the date normalization used by the SIE parsers.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date format constants for the layouts that occur in SIE files.
const (
	DateLayoutISO     = "2006-01-02"
	DateLayoutCompact = "20060102"
	DateLayoutMonth   = "2006-01"
)

// NormalizeDate converts a SIE date string to a canonical ISO date.
//
// Accepted inputs: already-ISO YYYY-MM-DD (returned unchanged), the SIE4
// compact YYYYMMDD form, and the SIE5 partial YYYY-MM form. A partial month
// resolves to the first day of the month, or to the last calendar day when
// endOfPeriod is true (computed from the actual month length).
//
// Unrecognized input is returned unchanged so the caller can flag it
// downstream; this function never fails.
func NormalizeDate(dateStr string, endOfPeriod bool) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return ""
	}

	if t, err := time.Parse(DateLayoutISO, dateStr); err == nil {
		return t.Format(DateLayoutISO)
	}

	if t, err := time.Parse(DateLayoutCompact, dateStr); err == nil {
		return t.Format(DateLayoutISO)
	}

	if t, err := time.Parse(DateLayoutMonth, dateStr); err == nil {
		if endOfPeriod {
			return EndOfMonth(t).Format(DateLayoutISO)
		}
		return StartOfMonth(t).Format(DateLayoutISO)
	}

	return dateStr
}

// ParseISODate parses a canonical ISO date.
func ParseISODate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}
	return t, nil
}

// YearOf extracts the calendar year from a normalized date string.
// Returns 0 when the date cannot be parsed.
func YearOf(dateStr string) int {
	t, err := ParseISODate(NormalizeDate(dateStr, false))
	if err != nil {
		return 0
	}
	return t.Year()
}

// MonthYear extracts the calendar year from a YYYY-MM month key.
// Returns 0 when the key cannot be parsed.
func MonthYear(month string) int {
	t, err := time.Parse(DateLayoutMonth, strings.TrimSpace(month))
	if err != nil {
		return 0
	}
	return t.Year()
}

// StartOfMonth returns the first day of the month for a given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date.
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}
