package query

import (
	"log/slog"
	"time"
)

// Observer is notified of every Fetch with the namespace and whether it hit the cache.
type Observer func(namespace string, hit bool)

// Option configures a Client.
type Option func(*Client)

// WithTTL sets how long results stay cached. Default: 30s.
func WithTTL(d time.Duration) Option {
	return func(c *Client) {
		c.ttl = d
	}
}

// WithLogger sets the logger for background refetch failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithObserver registers a hit/miss callback.
func WithObserver(fn Observer) Option {
	return func(c *Client) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}
