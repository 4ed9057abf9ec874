package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/blogfront/pkg/cache"
)

// Client owns the cache and the refetch scheduler.
type Client struct {
	group     *cache.Group
	cron      *cron.Cron
	logger    *slog.Logger
	observers []Observer
	ttl       time.Duration
}

// New creates a query client on top of store.
func New(store cache.Store, opts ...Option) *Client {
	c := &Client{
		group: cache.NewGroup(store),
		ttl:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.cron = cron.New(
		cron.WithParser(parser),
		cron.WithLogger(cronLogger{c.logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{c.logger})),
	)
	return c
}

// TTL returns the configured cache lifetime.
func (c *Client) TTL() time.Duration {
	return c.ttl
}

// Key joins key parts with ":".
func Key(parts ...any) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, ":")
}

// Fetch returns the cached result for namespace/key or loads it with fn.
// Loader errors are returned as is and never cached.
func Fetch[T any](ctx context.Context, c *Client, namespace, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T

	full, err := c.key(ctx, namespace, key)
	if err != nil {
		return fn(ctx)
	}

	raw, hit, err := c.group.GetOrSet(ctx, full, func(ctx context.Context) ([]byte, time.Duration, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, 0, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, 0, fmt.Errorf("query: encode %s: %w", namespace, err)
		}
		return b, c.ttl, nil
	})
	if err != nil {
		return out, err
	}
	for _, obs := range c.observers {
		obs(namespace, hit)
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errors.Join(ErrDecode, err)
	}
	return out, nil
}

// Invalidate drops every cached key of the given namespaces.
func (c *Client) Invalidate(ctx context.Context, namespaces ...string) error {
	var errs []error
	for _, ns := range namespaces {
		if _, err := c.group.Store().Incr(ctx, genKey(ns)); err != nil {
			errs = append(errs, fmt.Errorf("query: invalidate %s: %w", ns, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Client) key(ctx context.Context, namespace, key string) (string, error) {
	gen, err := c.generation(ctx, namespace)
	if err != nil {
		return "", err
	}
	return "q:" + namespace + ":" + strconv.FormatInt(gen, 10) + ":" + key, nil
}

func (c *Client) generation(ctx context.Context, namespace string) (int64, error) {
	raw, err := c.group.Store().Get(ctx, genKey(namespace))
	if errors.Is(err, cache.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func genKey(namespace string) string {
	return "gen:" + namespace
}
