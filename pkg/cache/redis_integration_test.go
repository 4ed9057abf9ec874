//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/pkg/cache"
	"github.com/dmitrymomot/blogfront/pkg/redis"
)

func newRedisStore(t *testing.T, prefix string) *cache.Redis {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}
	client, err := redis.Open(context.Background(), url, redis.WithRetry(1, 10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedis(client, cache.WithPrefix(prefix+"-"+t.Name()))
}

func TestRedis_Store(t *testing.T) {
	t.Parallel()

	s := newRedisStore(t, "cache")
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrNotFound)

	n, err := s.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, s.Delete(ctx, "gen"))
}
