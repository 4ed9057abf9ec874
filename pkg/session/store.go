package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/blogfront/pkg/cache"
)

// Store persists sessions.
type Store interface {
	// Get returns ErrNotFound or ErrExpired when the session is unusable.
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// CacheStore keeps JSON-encoded sessions in a cache.Store until they expire.
type CacheStore struct {
	store  cache.Store
	prefix string
}

// NewCacheStore creates a store on top of a memory or Redis cache.
func NewCacheStore(store cache.Store) *CacheStore {
	return &CacheStore{store: store, prefix: "sess:"}
}

func (c *CacheStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := c.store.Get(ctx, c.prefix+id)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Join(ErrCorrupted, err)
	}
	if s.IsExpired() {
		_ = c.store.Delete(ctx, c.prefix+id)
		return nil, ErrExpired
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	return &s, nil
}

func (c *CacheStore) Save(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, c.prefix+s.ID, raw, ttl); err != nil {
		return err
	}
	s.MarkSaved()
	return nil
}

func (c *CacheStore) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.prefix+id)
}

var _ Store = (*CacheStore)(nil)
