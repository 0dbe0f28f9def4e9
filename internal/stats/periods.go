// Package stats computes period-based aggregates over the task and
// pomodoro-session history: completion counts in a window, Monday-start
// week math, and the daily/weekly/monthly chart buckets.
//
// Everything here is a pure function over its inputs. Tasks with absent
// or unparseable dates are excluded from counts, never errored on: the
// persisted store can contain records written by older clients.
package stats

import (
	"fmt"
	"time"

	"github.com/focusfoundry/tempo/internal/domain"
)

// dateLayouts are tried in order when parsing a stored date string.
var dateLayouts = []string{
	domain.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDateIn parses a stored date string permissively. Civil dates
// without zone information resolve to midnight in loc; values that carry
// an explicit offset keep it. The second return is false for empty or
// unparseable values.
//
// Callers comparing the result against window boundaries must pass the
// location the boundaries were built in, otherwise a civil date shifts
// into the neighbouring day for any non-UTC zone.
func ParseDateIn(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a stored date string in UTC. Safe for civil-date
// round-trips (parse then Format); use ParseDateIn for range checks.
func ParseDate(value string) (time.Time, bool) {
	return ParseDateIn(value, time.UTC)
}

// CompletedDate resolves the completion date of a task in loc, if usable.
func CompletedDate(t domain.Task, loc *time.Location) (time.Time, bool) {
	return ParseDateIn(t.CompletedAt, loc)
}

// CreatedDate resolves the creation date of a task in loc, falling back
// to the due date for legacy records that lack createdAt.
func CreatedDate(t domain.Task, loc *time.Location) (time.Time, bool) {
	if d, ok := ParseDateIn(t.CreatedAt, loc); ok {
		return d, true
	}
	return ParseDateIn(t.DueDate, loc)
}

// inRange reports whether d falls within [start, end] inclusive.
func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// CountCompletedInRange counts tasks whose completedAt falls within
// [start, end] inclusive. Stored civil dates are interpreted in the
// window's location. Order-independent; tasks with missing or malformed
// completion dates are excluded.
func CountCompletedInRange(tasks []domain.Task, start, end time.Time) int {
	loc := start.Location()
	count := 0
	for _, t := range tasks {
		if d, ok := CompletedDate(t, loc); ok && inRange(d, start, end) {
			count++
		}
	}
	return count
}

// CountCreatedInRange counts tasks created within [start, end] inclusive,
// using the dueDate fallback for legacy records.
func CountCreatedInRange(tasks []domain.Task, start, end time.Time) int {
	loc := start.Location()
	count := 0
	for _, t := range tasks {
		if d, ok := CreatedDate(t, loc); ok && inRange(d, start, end) {
			count++
		}
	}
	return count
}

// WeekStart returns the Monday 00:00 that starts the week containing t,
// in t's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// Go weekdays put Sunday at 0; shift so Monday is day 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the last instant of the week starting at start.
func WeekEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// WeekKey returns the Monday-start ISO week key for the week containing
// t, e.g. "2026-W36".
func WeekKey(t time.Time) string {
	year, week := WeekStart(t).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns the month key for t, e.g. "2026-09".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthStart returns the first instant of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last instant of the month containing t.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// WeekWindows describes the evaluation windows the gamification engine
// cares about, all relative to the evaluation clock ("now"), never the
// display anchor. A user browsing a past month in the calendar must not
// re-trigger or skip weekly evaluations.
type WeekWindows struct {
	ThisWeekStart       time.Time
	LastWeekStart       time.Time
	LastWeekEnd         time.Time
	WeekBeforeLastStart time.Time
	WeekBeforeLastEnd   time.Time

	// LastWeekKey identifies the most recently fully-completed week.
	LastWeekKey string
}

// WindowsAt computes the evaluation windows for the given moment.
func WindowsAt(now time.Time) WeekWindows {
	thisStart := WeekStart(now)
	lastStart := thisStart.AddDate(0, 0, -7)
	prevStart := thisStart.AddDate(0, 0, -14)
	return WeekWindows{
		ThisWeekStart:       thisStart,
		LastWeekStart:       lastStart,
		LastWeekEnd:         WeekEnd(lastStart),
		WeekBeforeLastStart: prevStart,
		WeekBeforeLastEnd:   WeekEnd(prevStart),
		LastWeekKey:         WeekKey(lastStart),
	}
}
