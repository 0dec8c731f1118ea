package game

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Clock returns the current time. Services take one so tests can pin the day.
type Clock func() time.Time

// DateString formats t as the UTC calendar date used for daily rollover.
func DateString(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// PreviousDate returns the calendar date one day before date. An unparseable
// date yields "".
func PreviousDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(dateLayout)
}

// WeekID is the ISO-8601 week of t in UTC, e.g. "2025-W01". The year is the
// ISO week-numbering year, so 2024-12-30 belongs to 2025-W01.
func WeekID(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Weekday names the UTC weekday of t.
func Weekday(t time.Time) string {
	return t.UTC().Weekday().String()
}
