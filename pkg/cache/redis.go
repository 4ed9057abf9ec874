package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a store backed by Redis, shared between application instances.
type Redis struct {
	client redis.UniversalClient
	opts   redisOptions
}

// NewRedis creates a Redis store. The client lifecycle belongs to the caller (pkg/redis).
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	o := redisOptions{defaultTTL: time.Minute}
	for _, opt := range opts {
		opt(&o)
	}
	return &Redis{client: client, opts: o}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}
	// Redis treats 0 as no expiration.
	return r.client.Set(ctx, r.key(key), value, max(ttl, 0)).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, r.key(key)).Result()
}

// Close is a no-op; see pkg/redis.Shutdown.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

var _ Store = (*Redis)(nil)
