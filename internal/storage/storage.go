package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a key that was never written or was removed.
var ErrNotFound = errors.New("key not found in storage")

// Store is a string-keyed blob store. Set replaces the whole value in one
// step, so readers never observe a partially written blob.
type Store interface {
	// Get returns the last value written for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set creates or overwrites the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the backend connection.
	Close() error
}
