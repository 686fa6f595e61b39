package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	return t
}

// Midnight drops the time-of-day component.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate parses a date cell. Spreadsheet exports are not consistent about
// date rendering, so a list of common layouts is tried in order.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	layouts := []string{
		dateLayout,
		"2006/01/02",
		"2006/1/2",
		"01-02-06",
		"1/2/06",
		"02/01/2006",
		"02-Jan-2006",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Midnight(t), nil
		}
	}
	// Timestamp cells sometimes carry a date-only meaning.
	if t, err := ParseTimestamp(s); err == nil {
		return Midnight(*t), nil
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %v", s)
}

// ParseTimestamp parses a datetime cell.
func ParseTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006/01/02 15:04:05",
		"1/2/06 15:04",
		dateLayout,
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, time.UTC); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
