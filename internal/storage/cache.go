package storage

import (
	"context"
	"sync"

	"github.com/coocood/freecache"
)

var _ Store = (*CachedStore)(nil)

// CachedStore serves repeated reads from an in-process freecache in front of
// a remote backend. Writes go to the backend first and only then update the
// cache, so a failed write never leaves a cached value the backend lacks.
//
// Every write bumps a per-key generation. A read that missed the cache only
// fills it when no write landed while it was reading the backend, so a slow
// reader cannot cache a value older than the backend's.
type CachedStore struct {
	inner Store
	cache *freecache.Cache

	mu  sync.Mutex
	gen map[string]uint64
}

// NewCachedStore wraps inner with a cache of sizeBytes (freecache enforces a 512KB minimum).
func NewCachedStore(inner Store, sizeBytes int) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: freecache.NewCache(sizeBytes),
		gen:   make(map[string]uint64),
	}
}

func (c *CachedStore) Get(ctx context.Context, key string) (string, error) {
	if v, err := c.cache.Get([]byte(key)); err == nil {
		return string(v), nil
	}

	c.mu.Lock()
	seen := c.gen[key]
	c.mu.Unlock()

	v, err := c.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	if c.gen[key] == seen {
		// values too large for the cache are simply not cached
		_ = c.cache.Set([]byte(key), []byte(v), 0)
	}
	c.mu.Unlock()
	return v, nil
}

func (c *CachedStore) Set(ctx context.Context, key, value string) error {
	// writes hold mu across the backend call so cache updates land in backend order
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.inner.Set(ctx, key, value)
	c.gen[key]++
	if err != nil {
		c.cache.Del([]byte(key))
		return err
	}
	if err := c.cache.Set([]byte(key), []byte(value), 0); err != nil {
		// too large to cache: drop any older cached copy instead
		c.cache.Del([]byte(key))
	}
	return nil
}

func (c *CachedStore) Remove(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.inner.Remove(ctx, key)
	c.gen[key]++
	c.cache.Del([]byte(key))
	return err
}

func (c *CachedStore) Close() error {
	c.cache.Clear()
	return c.inner.Close()
}

// HitRate reports the cache hit ratio since creation.
func (c *CachedStore) HitRate() float64 {
	return c.cache.HitRate()
}
