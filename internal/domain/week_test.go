package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestWeekLabel(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"first day of 2026 is a thursday", date(2026, time.January, 1), "2026-W01"},
		{"saturday closes week one", date(2026, time.January, 3), "2026-W01"},
		{"sunday opens week two", date(2026, time.January, 4), "2026-W02"},
		{"tuesday scenario", date(2026, time.January, 20), "2026-W04"},
		{"wednesday same week", date(2026, time.January, 21), "2026-W04"},
		{"year end is week 53", date(2026, time.December, 31), "2026-W53"},
		{"jan 1 on sunday", date(2023, time.January, 1), "2023-W01"},
		{"jan 7 2023 saturday", date(2023, time.January, 7), "2023-W01"},
		{"leap day", date(2024, time.February, 29), "2024-W09"},
		{"no iso spill into previous year", date(2027, time.January, 1), "2027-W01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekLabel(tt.in))
		})
	}
}

func TestWeekLabel_Deterministic(t *testing.T) {
	d := date(2025, time.August, 14)
	assert.Equal(t, WeekLabel(d), WeekLabel(d))
	// time of day does not move the bucket
	assert.Equal(t, WeekLabel(d), WeekLabel(time.Date(2025, time.August, 14, 0, 0, 1, 0, time.UTC)))
	assert.Equal(t, WeekLabel(d), WeekLabel(time.Date(2025, time.August, 14, 23, 59, 59, 0, time.UTC)))
}

func TestWeekLabel_AdjacentWeeks(t *testing.T) {
	// 2025-08-10 is a sunday
	sunday := date(2025, time.August, 10)
	for i := 0; i < 7; i++ {
		assert.Equal(t, WeekLabel(sunday), WeekLabel(sunday.AddDate(0, 0, i)))
	}
	assert.Equal(t, "2025-W33", WeekLabel(sunday))
	assert.Equal(t, "2025-W32", WeekLabel(sunday.AddDate(0, 0, -1)))
	assert.Equal(t, "2025-W34", WeekLabel(sunday.AddDate(0, 0, 7)))
}

func TestWeekLabel_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	// saturday 23:00 local is already sunday in UTC
	local := time.Date(2026, time.January, 3, 23, 0, 0, 0, loc)
	assert.Equal(t, "2026-W01", WeekLabel(local))
	assert.Equal(t, "2026-W02", WeekLabel(local.UTC()))
	assert.Equal(t, "2026-01-03", DayKey(local))
	assert.Equal(t, "2026-01-04", DayKey(local.UTC()))
}
