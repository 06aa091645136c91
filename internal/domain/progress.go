package domain

import (
	"fmt"
	"sort"
	"time"
)

// ExerciseProgress is reserved for per-exercise tracking. Nothing fills it
// yet; it is kept so stored blobs round-trip.
type ExerciseProgress struct {
	LastWeight     *float64 `json:"lastWeight,omitempty"`
	LastReps       *int     `json:"lastReps,omitempty"`
	LastSets       *int     `json:"lastSets,omitempty"`
	CompletedDates []string `json:"completedDates"`
}

// WeeklyStat is the aggregate for one week label.
type WeeklyStat struct {
	Week              string `json:"week"`
	CompletedWorkouts int    `json:"completedWorkouts"`
	TotalMinutes      int    `json:"totalMinutes"`
}

// Progress is the completion ledger of exactly one workout.
type Progress struct {
	SchemaVersion    int                         `json:"schemaVersion,omitempty"`
	WorkoutID        string                      `json:"workoutId"`
	CompletedDates   []string                    `json:"completedDates"`
	ExerciseProgress map[string]ExerciseProgress `json:"exerciseProgress"`
	WeeklyStats      []WeeklyStat                `json:"weeklyStats"`
}

// NewProgress returns an empty ledger owned by workoutID.
func NewProgress(workoutID string) *Progress {
	return &Progress{
		SchemaVersion:    CurrentSchemaVersion,
		WorkoutID:        workoutID,
		CompletedDates:   []string{},
		ExerciseProgress: map[string]ExerciseProgress{},
		WeeklyStats:      []WeeklyStat{},
	}
}

// CheckVersion rejects blobs written by a newer schema than this binary knows.
func (p *Progress) CheckVersion() error {
	if p.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("%w: progress v%d", ErrUnsupportedVersion, p.SchemaVersion)
	}
	return nil
}

// HasCompleted reports whether day is already credited.
func (p *Progress) HasCompleted(day string) bool {
	for _, d := range p.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}

// Record credits day in week. It returns false and changes nothing when the
// day is already credited.
func (p *Progress) Record(day, week string) bool {
	if p.HasCompleted(day) {
		return false
	}
	p.CompletedDates = append(p.CompletedDates, day)
	for i := range p.WeeklyStats {
		if p.WeeklyStats[i].Week == week {
			p.WeeklyStats[i].CompletedWorkouts++
			return true
		}
	}
	p.WeeklyStats = append(p.WeeklyStats, WeeklyStat{Week: week, CompletedWorkouts: 1})
	return true
}

func (p *Progress) TotalCompletions() int {
	return len(p.CompletedDates)
}

// CompletionsInWeek returns the count for label, zero when there is no bucket.
func (p *Progress) CompletionsInWeek(label string) int {
	for _, s := range p.WeeklyStats {
		if s.Week == label {
			return s.CompletedWorkouts
		}
	}
	return 0
}

// RecentCompletions returns up to k days, newest first.
func (p *Progress) RecentCompletions(k int) []string {
	days := make([]string, len(p.CompletedDates))
	copy(days, p.CompletedDates)
	// YYYY-MM-DD sorts lexically in date order
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if k >= 0 && len(days) > k {
		days = days[:k]
	}
	return days
}

// RecentWeeks returns up to the last m week buckets in chronological order.
func (p *Progress) RecentWeeks(m int) []WeeklyStat {
	stats := p.WeeklyStats
	if m >= 0 && len(stats) > m {
		stats = stats[len(stats)-m:]
	}
	out := make([]WeeklyStat, len(stats))
	copy(out, stats)
	return out
}

// Streak counts consecutive credited days ending today. An uncredited today
// does not break the streak yet; counting then starts from yesterday.
func (p *Progress) Streak(today time.Time) int {
	done := make(map[string]struct{}, len(p.CompletedDates))
	for _, d := range p.CompletedDates {
		done[d] = struct{}{}
	}
	day := today
	if _, ok := done[DayKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for {
		if _, ok := done[DayKey(day)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
