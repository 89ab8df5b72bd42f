package controller

import (
	"fmt"
	"time"
)

// parseISO8601Date parses a date string in ISO 8601 format (RFC3339 is
// ISO 8601 compliant). Supports:
//   - RFC3339 (e.g., "2006-01-02T15:04:05Z07:00")
//   - YYYY-MM-DD (e.g., "2006-01-02")
//   - YYYY-MM-DDTHH:MM:SS (e.g., "2006-01-02T15:04:05")
//
// Bare dates resolve to the start of that calendar day so that day
// arithmetic downstream stays calendar-based.
func parseISO8601Date(dateStr string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", dateStr); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse ISO 8601 date: %s (expected RFC3339 or YYYY-MM-DD format)", dateStr)
}
