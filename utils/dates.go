package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical wire format for calendar dates.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when parsing a request date. Human-entered
// dates arrive in several shapes, so machine formats come first and the
// looser ones after.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"01/02/2006",
	"2 January 2006",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
}

var ordinalSuffixRe = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)`)

// ParseFlexibleDate parses a date string that may be machine formatted
// ("2025-12-26") or loosely human formatted ("26th December 2025",
// "Dec 26, 2025"). Ordinal day suffixes are stripped before parsing.
func ParseFlexibleDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	s = ordinalSuffixRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "  ", " ")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format: %q", raw)
}

// ParseClock parses an "HH:MM" clock string into hour and minute.
func ParseClock(raw string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", raw, err)
	}
	return t.Hour(), t.Minute(), nil
}

// DaysUntil returns the number of whole calendar days from today until the
// given date, ignoring the time-of-day component of both.
func DaysUntil(now, date time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
