package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrWorkoutIDRequired = errors.New("workout id is required")
)

// Completion is the outcome of MarkCompleted. Credited is false when the
// day had already been credited and nothing was written.
type Completion struct {
	Progress *domain.Progress `json:"progress"`
	Day      string           `json:"day"`
	Week     string           `json:"week"`
	Credited bool             `json:"credited"`
}

// Summary is the dashboard view of a progress ledger.
type Summary struct {
	WorkoutID        string              `json:"workoutId"`
	TotalCompletions int                 `json:"totalCompletions"`
	Week             string              `json:"week"`
	ThisWeek         int                 `json:"thisWeek"`
	CompletedToday   bool                `json:"completedToday"`
	Streak           int                 `json:"streak"`
	Recent           []string            `json:"recent"`
	Weeks            []domain.WeeklyStat `json:"weeks"`
}

// ProgressService tracks per-day completion of the active workout.
//
// A namespace holds one progress ledger, owned by one workout. Reading it
// for a different workout id (or finding it missing or unreadable) moves it
// back to the initialized state: an empty ledger for the requested workout
// is persisted and returned. Callers never reset progress explicitly.
type ProgressService interface {
	GetProgress(ctx context.Context, ns, workoutID string) (*domain.Progress, error)
	// MarkCompleted credits today at most once per calendar day.
	MarkCompleted(ctx context.Context, ns, workoutID string) (*Completion, error)
	Summary(ctx context.Context, ns, workoutID string, recent, weeks int) (*Summary, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	loc          *time.Location
	now          func() time.Time
	locks        *keyedMutex
}

// NewProgressService creates the tracker. Calendar days are taken in loc;
// now defaults to time.Now.
func NewProgressService(progressRepo repository.ProgressRepository, loc *time.Location, now func() time.Time) ProgressService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &progressService{
		progressRepo: progressRepo,
		loc:          loc,
		now:          now,
		locks:        progressLocks,
	}
}

func (s *progressService) today() time.Time {
	return s.now().In(s.loc)
}

func (s *progressService) GetProgress(ctx context.Context, ns, workoutID string) (*domain.Progress, error) {
	if workoutID == "" {
		return nil, ErrWorkoutIDRequired
	}
	// one blob per namespace, so the namespace is the unit of serialization
	unlock := s.locks.Lock(ns)
	defer unlock()
	return s.loadOrInit(ctx, ns, workoutID)
}

// loadOrInit must be called with the namespace lock held.
func (s *progressService) loadOrInit(ctx context.Context, ns, workoutID string) (*domain.Progress, error) {
	progress, err := s.progressRepo.Load(ctx, ns)
	switch {
	case err == nil && progress.WorkoutID == workoutID:
		return progress, nil
	case err == nil:
		log.WithFields(log.Fields{"ns": ns, "old": progress.WorkoutID, "new": workoutID}).
			Info("progress belongs to another workout, starting over")
	case errors.Is(err, repository.ErrNotFound):
	case errors.Is(err, repository.ErrCorrupt):
		log.WithError(err).WithField("ns", ns).Warn("discarding unreadable progress")
	default:
		return nil, fmt.Errorf("get progress: %w", err)
	}

	fresh := domain.NewProgress(workoutID)
	if err := s.progressRepo.Save(ctx, ns, fresh); err != nil {
		return nil, fmt.Errorf("initialize progress: %w", err)
	}
	return fresh, nil
}

func (s *progressService) MarkCompleted(ctx context.Context, ns, workoutID string) (*Completion, error) {
	if workoutID == "" {
		return nil, ErrWorkoutIDRequired
	}
	unlock := s.locks.Lock(ns)
	defer unlock()

	progress, err := s.loadOrInit(ctx, ns, workoutID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	completion := &Completion{
		Progress: progress,
		Day:      domain.DayKey(today),
		Week:     domain.WeekLabel(today),
	}
	if !progress.Record(completion.Day, completion.Week) {
		return completion, nil
	}

	if err := s.progressRepo.Save(ctx, ns, progress); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}
	completion.Credited = true

	log.WithFields(log.Fields{"ns": ns, "workout": workoutID, "day": completion.Day, "week": completion.Week}).
		Info("workout completion credited")
	return completion, nil
}

func (s *progressService) Summary(ctx context.Context, ns, workoutID string, recent, weeks int) (*Summary, error) {
	progress, err := s.GetProgress(ctx, ns, workoutID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	week := domain.WeekLabel(today)
	return &Summary{
		WorkoutID:        progress.WorkoutID,
		TotalCompletions: progress.TotalCompletions(),
		Week:             week,
		ThisWeek:         progress.CompletionsInWeek(week),
		CompletedToday:   progress.HasCompleted(domain.DayKey(today)),
		Streak:           progress.Streak(today),
		Recent:           progress.RecentCompletions(recent),
		Weeks:            progress.RecentWeeks(weeks),
	}, nil
}
