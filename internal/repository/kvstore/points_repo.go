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

type pointsRepository struct {
	store storage.Store
}

func NewPointsRepository(store storage.Store) repository.PointsRepository {
	return &pointsRepository{store: store}
}

func (r *pointsRepository) Load(ctx context.Context, ns string) (*domain.PointsLedger, error) {
	data, err := r.store.Get(ctx, PointsKey(ns))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &domain.PointsLedger{Activities: []domain.Activity{}}, nil
		}
		return nil, fmt.Errorf("load points: %w", err)
	}
	var ledger domain.PointsLedger
	if err := json.Unmarshal([]byte(data), &ledger); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}
	if ledger.Activities == nil {
		ledger.Activities = []domain.Activity{}
	}
	return &ledger, nil
}

func (r *pointsRepository) Save(ctx context.Context, ns string, ledger *domain.PointsLedger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encode points: %w", err)
	}
	if err := r.store.Set(ctx, PointsKey(ns), string(data)); err != nil {
		return fmt.Errorf("save points: %w", err)
	}
	return nil
}
