package model

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for user-entered dates, tried in order. The zone-less
// layouts are interpreted in the local time zone.
var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses an absolute timestamp in one of the accepted layouts
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DDTHH:MM or RFC 3339)", s)
}

// ParseDue parses a due date for CLI and TUI input. Empty input means no
// reminder. A leading "+" is read as a duration relative to now ("+30m").
func ParseDue(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "+") {
		d, err := time.ParseDuration(s[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid relative due %q: %w", s, err)
		}
		t := now.Add(d)
		return &t, nil
	}
	t, err := ParseTime(s, now.Location())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDue renders a due date in loc using the datetime-local input layout,
// so that ParseDue with a clock in loc reads it back
func FormatDue(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02T15:04")
}
