package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is a key-value store with TTL support.
type Store interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments a counter and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

// Loader computes a value on a miss, with the TTL to cache it for.
type Loader func(ctx context.Context) ([]byte, time.Duration, error)

// Group deduplicates concurrent loads per store.
type Group struct {
	store Store
	sf    singleflight.Group
}

// NewGroup wraps s with stampede protection.
func NewGroup(s Store) *Group {
	return &Group{store: s}
}

// Store returns the wrapped store.
func (g *Group) Store() Store {
	return g.store
}

type loaded struct {
	val []byte
	ttl time.Duration
}

// GetOrSet returns the cached value or calls fn once for all concurrent callers of key.
// A loader error is returned unchanged and nothing is cached.
// hit reports whether the value came from the store.
func (g *Group) GetOrSet(ctx context.Context, key string, fn Loader) (val []byte, hit bool, err error) {
	if v, err := g.store.Get(ctx, key); err == nil {
		return v, true, nil
	}

	res, err, _ := g.sf.Do(key, func() (any, error) {
		v, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return loaded{val: v, ttl: ttl}, nil
	})
	if err != nil {
		return nil, false, err
	}

	r := res.(loaded)
	_ = g.store.Set(ctx, key, r.val, r.ttl)
	return r.val, false, nil
}
