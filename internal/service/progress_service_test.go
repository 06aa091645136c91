package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, start time.Time) (ProgressService, *flakyStore, *fakeClock) {
	t.Helper()
	store := newFlakyStore()
	clock := newFakeClock(start)
	svc := NewProgressService(kvstore.NewProgressRepository(store), time.UTC, clock.Now)
	return svc, store, clock
}

func TestProgressService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestTracker(t, time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC))

	c, err := svc.MarkCompleted(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.True(t, c.Credited)
	assert.Equal(t, "2026-01-20", c.Day)
	assert.Equal(t, "2026-W04", c.Week)
	assert.Equal(t, []string{"2026-01-20"}, c.Progress.CompletedDates)
	assert.Equal(t, []domain.WeeklyStat{{Week: "2026-W04", CompletedWorkouts: 1, TotalMinutes: 0}}, c.Progress.WeeklyStats)

	// same day again: nothing changes
	clock.Advance(8 * time.Hour)
	c, err = svc.MarkCompleted(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.False(t, c.Credited)
	p, err := svc.GetProgress(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-20"}, p.CompletedDates)
	assert.Equal(t, 1, p.WeeklyStats[0].CompletedWorkouts)

	// next day, same week
	clock.Advance(16 * time.Hour)
	c, err = svc.MarkCompleted(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.True(t, c.Credited)
	assert.Equal(t, []string{"2026-01-20", "2026-01-21"}, c.Progress.CompletedDates)
	assert.Equal(t, []domain.WeeklyStat{{Week: "2026-W04", CompletedWorkouts: 2}}, c.Progress.WeeklyStats)

	// a different workout starts over
	p, err = svc.GetProgress(ctx, testNS, "w2")
	require.NoError(t, err)
	assert.Equal(t, "w2", p.WorkoutID)
	assert.Empty(t, p.CompletedDates)
	assert.Empty(t, p.WeeklyStats)

	p, err = svc.GetProgress(ctx, testNS, "w2")
	require.NoError(t, err)
	assert.Equal(t, "w2", p.WorkoutID)
	assert.Empty(t, p.CompletedDates)
}

func TestProgressService_GetProgressInitializes(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestTracker(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	p, err := svc.GetProgress(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", p.WorkoutID)
	assert.NotNil(t, p.CompletedDates)
	assert.NotNil(t, p.ExerciseProgress)

	// the fresh ledger is persisted, not just returned
	_, err = store.MemoryStore.Get(ctx, kvstore.ProgressKey(testNS))
	assert.NoError(t, err)

	_, err = svc.GetProgress(ctx, testNS, "")
	assert.ErrorIs(t, err, ErrWorkoutIDRequired)
}

func TestProgressService_CorruptProgressResets(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestTracker(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Set(ctx, kvstore.ProgressKey(testNS), `{"workoutId":"w1","completedDates":`))

	p, err := svc.GetProgress(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", p.WorkoutID)
	assert.Empty(t, p.CompletedDates)
}

func TestProgressService_StoreFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newTestTracker(t, time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC))

	_, err := svc.MarkCompleted(ctx, testNS, "w1")
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	store.fail(false, true)
	_, err = svc.MarkCompleted(ctx, testNS, "w1")
	assert.ErrorIs(t, err, errStoreDown)

	store.fail(true, false)
	_, err = svc.GetProgress(ctx, testNS, "w1")
	assert.ErrorIs(t, err, errStoreDown)

	// the failed write left the stored ledger untouched
	store.fail(false, false)
	p, err := svc.GetProgress(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-20"}, p.CompletedDates)
	assert.Equal(t, 1, p.WeeklyStats[0].CompletedWorkouts)
}

func TestProgressService_ConcurrentCompletions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTracker(t, time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC))

	const callers = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		credited int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := svc.MarkCompleted(ctx, testNS, "w1")
			if !assert.NoError(t, err) {
				return
			}
			if c.Credited {
				mu.Lock()
				credited++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, credited)
	p, err := svc.GetProgress(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.Len(t, p.CompletedDates, 1)
	require.Len(t, p.WeeklyStats, 1)
	assert.Equal(t, 1, p.WeeklyStats[0].CompletedWorkouts)
	assert.Zero(t, svc.(*progressService).locks.size())
}

func TestProgressService_NamespacesAreIndependent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTracker(t, time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.MarkCompleted(ctx, fmt.Sprintf("%s/user-%d", testNS, i), "w1")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		p, err := svc.GetProgress(ctx, fmt.Sprintf("%s/user-%d", testNS, i), "w1")
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-20"}, p.CompletedDates)
	}
}

func TestProgressService_Summary(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestTracker(t, time.Date(2026, 1, 19, 7, 0, 0, 0, time.UTC))

	_, err := svc.MarkCompleted(ctx, testNS, "w1")
	require.NoError(t, err)
	clock.Advance(24 * time.Hour)
	_, err = svc.MarkCompleted(ctx, testNS, "w1")
	require.NoError(t, err)

	s, err := svc.Summary(ctx, testNS, "w1", 5, 4)
	require.NoError(t, err)
	assert.Equal(t, "w1", s.WorkoutID)
	assert.Equal(t, 2, s.TotalCompletions)
	assert.Equal(t, "2026-W04", s.Week)
	assert.Equal(t, 2, s.ThisWeek)
	assert.True(t, s.CompletedToday)
	assert.Equal(t, 2, s.Streak)
	assert.Equal(t, []string{"2026-01-20", "2026-01-19"}, s.Recent)
	assert.Equal(t, []domain.WeeklyStat{{Week: "2026-W04", CompletedWorkouts: 2}}, s.Weeks)

	// a week later nothing is credited for the current week
	clock.Advance(7 * 24 * time.Hour)
	s, err = svc.Summary(ctx, testNS, "w1", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "2026-W05", s.Week)
	assert.Zero(t, s.ThisWeek)
	assert.False(t, s.CompletedToday)
	assert.Zero(t, s.Streak)
	assert.Equal(t, []string{"2026-01-20"}, s.Recent)
}

func TestProgressService_DayUsesLocation(t *testing.T) {
	ctx := context.Background()
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	clock := newFakeClock(time.Date(2026, 1, 21, 1, 0, 0, 0, time.UTC)) // 22:00 on the 20th in BRT
	svc := NewProgressService(kvstore.NewProgressRepository(newFlakyStore()), saoPaulo, clock.Now)

	c, err := svc.MarkCompleted(ctx, testNS, "w1")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-20", c.Day)
}
