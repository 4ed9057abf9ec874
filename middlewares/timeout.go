package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/blogfront/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Timeout time.Duration
	Skip    func(c internal.Context) bool
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// WithTimeoutSkip excludes requests for which fn reports true, e.g. streaming endpoints.
func WithTimeoutSkip(fn func(c internal.Context) bool) TimeoutOption {
	return func(cfg *TimeoutConfig) {
		cfg.Skip = fn
	}
}

// Timeout returns middleware that bounds the time a page may spend waiting on the backend.
// Handlers pick up the deadline through GetTimeoutContext and pass it to every API call,
// so a slow backend surfaces as a TimeoutError instead of a hung page.
//
// The handler goroutine keeps running after the deadline until its backend calls
// observe the cancelled context.
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &TimeoutConfig{
		Timeout: timeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if cfg.Skip != nil && cfg.Skip(c) {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(c.Context(), cfg.Timeout)
			defer cancel()
			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			var err error
			select {
			case err = <-done:
				if !errors.Is(err, context.DeadlineExceeded) || ctx.Err() == nil {
					return err
				}
			case <-ctx.Done():
				err = ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				c.LogWarn("request timeout", "timeout", cfg.Timeout.String(), "path", c.Request().URL.Path)
				return &TimeoutError{Duration: cfg.Timeout}
			}
			return err
		}
	}
}

type timeoutContextKey struct{}

// GetTimeoutContext returns the deadline-bound context set by Timeout,
// or the request context when the middleware is not installed.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
