// Package workday contains the working-day countdown used for task deadlines.
// This is part of the Functional Core - no I/O, only pure functions.
package workday

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD due date as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return t, nil
}

// Until counts Monday-Friday days walking forward one day at a time from
// today's midnight while the walk is still before target's midnight.
// Today itself is counted when it is a weekday; the target day is not.
// Targets on or before today yield 0, so past dates never go negative.
func Until(today, target time.Time) int {
	current := midnight(today, today.Location())
	end := midnight(target, today.Location())

	days := 0
	for current.Before(end) {
		switch current.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
		current = current.AddDate(0, 0, 1)
	}
	return days
}

// Format renders a working-day count as shown next to a deadline.
func Format(days int) string {
	switch {
	case days == 0:
		return "Due today"
	case days == 1:
		return "in 1 working day"
	case days < 0:
		return "Overdue"
	default:
		return fmt.Sprintf("in %d working days", days)
	}
}

// FormatUntil formats the countdown to a YYYY-MM-DD due date.
// An empty due date has no countdown and yields "".
func FormatUntil(today time.Time, due string) (string, error) {
	if due == "" {
		return "", nil
	}
	target, err := ParseDate(due, today.Location())
	if err != nil {
		return "", err
	}
	return Format(Until(today, target)), nil
}

// midnight returns the start of t's calendar day in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
