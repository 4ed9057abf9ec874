// Package redis opens and supervises the go-redis client shared by the session
// store and the query cache.
//
//	client, err := redis.Open(ctx, cfg.RedisURL,
//	    redis.WithPoolSize(20),
//	    redis.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//
// Open retries the initial ping with a linear backoff. Healthcheck plugs into the
// readiness endpoint and Shutdown into the application shutdown hooks.
package redis
