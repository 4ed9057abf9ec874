package internal

import (
	"context"
	"log/slog"
	"time"
)

// RunOption configures App.Run.
type RunOption func(*runtimeConfig)

// Address overrides the address passed to Run. Empty values are ignored.
func Address(addr string) RunOption {
	return func(c *runtimeConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

// Logger sets the server lifecycle logger. Without it the lifecycle is silent.
func Logger(l *slog.Logger) RunOption {
	return func(c *runtimeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds the HTTP drain plus all shutdown hooks. Default: 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runtimeConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// StartupHook runs fn after the port is bound and before the first request is
// served. Hooks run in registration order; the first failure aborts Run.
//
//	blogfront.StartupHook(q.StartFunc())
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runtimeConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook runs fn after the HTTP server has drained, in registration order.
// Every hook runs even when an earlier one fails.
//
//	blogfront.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runtimeConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the parent of the signal context. Cancelling it starts a
// graceful shutdown like SIGTERM does.
func WithContext(ctx context.Context) RunOption {
	return func(c *runtimeConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
