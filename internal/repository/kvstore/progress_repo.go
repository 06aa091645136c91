package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
)

type progressRepository struct {
	store storage.Store
}

func NewProgressRepository(store storage.Store) repository.ProgressRepository {
	return &progressRepository{store: store}
}

func (r *progressRepository) Load(ctx context.Context, ns string) (*domain.Progress, error) {
	data, err := r.store.Get(ctx, ProgressKey(ns))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var progress domain.Progress
	if err := json.Unmarshal([]byte(data), &progress); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}
	if err := progress.CheckVersion(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}
	normalize(&progress)
	return &progress, nil
}

func (r *progressRepository) Save(ctx context.Context, ns string, progress *domain.Progress) error {
	progress.SchemaVersion = domain.CurrentSchemaVersion
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := r.store.Set(ctx, ProgressKey(ns), string(data)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// normalize replaces JSON nulls with empty collections so callers can
// append without nil checks and re-encoding keeps "[]" rather than "null".
func normalize(p *domain.Progress) {
	if p.CompletedDates == nil {
		p.CompletedDates = []string{}
	}
	if p.ExerciseProgress == nil {
		p.ExerciseProgress = map[string]domain.ExerciseProgress{}
	}
	if p.WeeklyStats == nil {
		p.WeeklyStats = []domain.WeeklyStat{}
	}
}
