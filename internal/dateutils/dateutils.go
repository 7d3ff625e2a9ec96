// Package dateutils parses the dates users type and formats dates for display.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted on input
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	MonthLayout        = "2006-01"
)

// CommonFormats is tried in order by ParseDate.
var CommonFormats = []string{
	time.RFC3339Nano,
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutEuropean,
	DateLayoutUS,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var spaces = regexp.MustCompile(`\s+`)

// ParseDate parses s with the first matching layout of CommonFormats.
// Dates without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	cleaned := CleanDateString(s)
	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// ParseOptionalDate is ParseDate where empty input yields the zero time.
func ParseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return ParseDate(s)
}

// FormatDate formats date with layout, DateLayoutISO when layout is empty.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// CleanDateString trims s and collapses inner whitespace.
func CleanDateString(s string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(s), " ")
}

// MonthRange parses a YYYY-MM month and returns its first instant and the
// first instant of the following month.
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(MonthLayout, strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// DaysUntil counts calendar days from now to due; negative when due has passed.
func DaysUntil(due, now time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n).Hours() / 24)
}
