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

// userRepository keeps accounts under <ns>:user:<email>. It does not guard
// against two concurrent Creates for the same email; the auth service
// serializes registration.
type userRepository struct {
	store storage.Store
	ns    string
}

// NewUserRepository stores users in the shared namespace ns.
func NewUserRepository(store storage.Store, ns string) repository.UserRepository {
	return &userRepository{store: store, ns: ns}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Email == "" || user.PasswordHash == "" || user.ID == "" {
		return errors.New("user id, email and password hash are required")
	}
	_, err := r.GetByEmail(ctx, user.Email)
	if err == nil {
		return repository.ErrAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return r.store.Set(ctx, userKey(r.ns, user.Email), string(data))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	data, err := r.store.Get(ctx, userKey(r.ns, email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}
	return &user, nil
}
