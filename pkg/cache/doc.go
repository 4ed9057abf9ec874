// Package cache provides a byte-oriented key-value store with in-memory and Redis backends.
//
// Values are opaque byte slices; callers choose the encoding. pkg/query stores
// JSON documents fetched from the backend API here.
//
// # Interface
//
//   - Get(ctx, key) ([]byte, error)
//   - Set(ctx, key, value, ttl) error
//   - Delete(ctx, key) error
//   - Incr(ctx, key) (int64, error)
//   - Close() error
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the store default TTL
//   - Negative: item never expires
//
// Incr counters never expire; they are used as generation numbers.
//
// # Backends
//
//	mem := cache.NewMemory(cache.WithDefaultTTL(time.Minute), cache.WithMaxEntries(5000))
//	defer mem.Close()
//
//	rdb := cache.NewRedis(client, cache.WithPrefix("blogfront"))
//
// # Stampede protection
//
// GetOrSet runs the loader once per key for concurrent misses on the same store.
package cache
