// Package timetable builds the weekly childcare view: it resolves week
// windows and merges a child's log entries and schedule items into a
// 7-day by 8-slot grid.
package timetable

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned when a date string does not match the
// expected YYYY-MM-DD pattern.
var ErrInvalidDateFormat = errors.New("invalid date format")

const dateLayout = "2006-01-02"

// Week is a half-open week window [Start, End) anchored on a Monday,
// plus the anchors of the adjacent weeks for navigation.
type Week struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Prev  time.Time `json:"prev"`
	Next  time.Time `json:"next"`
}

// WeekOf returns the week containing t. Start is the Monday of that week
// truncated to midnight UTC.
func WeekOf(t time.Time) Week {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	return Week{
		Start: start,
		End:   start.AddDate(0, 0, 7),
		Prev:  start.AddDate(0, 0, -7),
		Next:  start.AddDate(0, 0, 7),
	}
}

// ResolveWeek resolves a week window from an optional YYYY-MM-DD reference
// date. An empty reference means the current week (UTC).
func ResolveWeek(reference string) (Week, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return WeekOf(time.Now().UTC()), nil
	}
	t, err := time.Parse(dateLayout, reference)
	if err != nil {
		return Week{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, reference)
	}
	return WeekOf(t), nil
}
