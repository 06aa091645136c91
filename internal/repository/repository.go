package repository

import (
	"alcyxob/workout-tracker/internal/domain" // Import our defined domain models
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrCorrupt       = RepositoryError("stored data is malformed")
	ErrAlreadyExists = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Every repository method takes the storage namespace it operates in. The
// CLI uses one fixed namespace; the API gives every user their own.

// WorkoutRepository persists the single active workout of a namespace.
type WorkoutRepository interface {
	// Save overwrites any previous workout.
	Save(ctx context.Context, ns string, workout *domain.Workout) error
	// Load returns ErrNotFound when nothing is stored or the stored blob is malformed.
	Load(ctx context.Context, ns string) (*domain.Workout, error)
	// Delete removes the workout together with its progress.
	Delete(ctx context.Context, ns string) error
}

// ProgressRepository persists the progress ledger of a namespace.
type ProgressRepository interface {
	// Load returns ErrNotFound when absent and ErrCorrupt when undecodable.
	Load(ctx context.Context, ns string) (*domain.Progress, error)
	Save(ctx context.Context, ns string, progress *domain.Progress) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create fails with ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// PointsRepository persists the points ledger of a namespace.
type PointsRepository interface {
	// Load returns an empty ledger when none is stored.
	Load(ctx context.Context, ns string) (*domain.PointsLedger, error)
	Save(ctx context.Context, ns string, ledger *domain.PointsLedger) error
}
