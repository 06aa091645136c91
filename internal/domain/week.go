package domain

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day identifier format stored in completed dates.
const DayLayout = "2006-01-02"

// DayKey returns the calendar day of t in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// WeekLabel maps a date to its aggregation bucket, e.g. "2026-W04".
//
// Weeks are counted from January 1st of the date's calendar year with
// Sunday as the first weekday. This is not ISO-8601: there is no Thursday
// rule and no spill-over into the neighbouring year, so Dec 31 can land in
// week 53 and the label year is always t.Year(). Labels already persisted
// depend on this exact arithmetic.
func WeekLabel(t time.Time) string {
	year := t.Year()
	oneJan := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	// ceil(n/7) for positive n
	n := days + int(oneJan.Weekday()) + 1
	week := (n + 6) / 7
	return fmt.Sprintf("%d-W%02d", year, week)
}
