package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// workoutRepository implements repository.WorkoutRepository on a storage.Store.
type workoutRepository struct {
	store storage.Store
}

func NewWorkoutRepository(store storage.Store) repository.WorkoutRepository {
	return &workoutRepository{store: store}
}

func (r *workoutRepository) Save(ctx context.Context, ns string, workout *domain.Workout) error {
	if workout == nil || workout.ID == "" {
		return errors.New("workout with an id is required")
	}
	workout.SchemaVersion = domain.CurrentSchemaVersion
	data, err := json.Marshal(workout)
	if err != nil {
		return fmt.Errorf("encode workout: %w", err)
	}
	if err := r.store.Set(ctx, WorkoutKey(ns), string(data)); err != nil {
		return fmt.Errorf("save workout: %w", err)
	}
	return nil
}

// Load treats an undecodable blob as absent: a corrupted local copy is
// regenerable and must not break the caller.
func (r *workoutRepository) Load(ctx context.Context, ns string) (*domain.Workout, error) {
	data, err := r.store.Get(ctx, WorkoutKey(ns))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load workout: %w", err)
	}

	var workout domain.Workout
	if err := json.Unmarshal([]byte(data), &workout); err != nil {
		log.WithError(err).WithField("key", WorkoutKey(ns)).Warn("discarding malformed workout")
		return nil, repository.ErrNotFound
	}
	if err := workout.CheckVersion(); err != nil {
		log.WithError(err).WithField("key", WorkoutKey(ns)).Warn("discarding workout")
		return nil, repository.ErrNotFound
	}
	if workout.ID == "" {
		log.WithField("key", WorkoutKey(ns)).Warn("discarding workout without id")
		return nil, repository.ErrNotFound
	}
	return &workout, nil
}

// Delete removes the workout and its progress. Both removals are attempted
// even when the first fails.
func (r *workoutRepository) Delete(ctx context.Context, ns string) error {
	err := multierr.Append(
		r.store.Remove(ctx, WorkoutKey(ns)),
		r.store.Remove(ctx, ProgressKey(ns)),
	)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}
