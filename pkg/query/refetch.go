package query

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Refetch reloads namespace/key on schedule and stores the fresh result.
// The job runs with a background context; fn must not depend on a visitor token.
func Refetch[T any](c *Client, spec, namespace, key string, fn func(ctx context.Context) (T, error)) (cron.EntryID, error) {
	if _, err := parser.Parse(spec); err != nil {
		return 0, errors.Join(ErrInvalidSchedule, err)
	}
	return c.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.ttl)
		defer cancel()

		if err := refresh(ctx, c, namespace, key, fn); err != nil {
			c.logger.WarnContext(ctx, "query refetch failed",
				slog.String("namespace", namespace),
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
	})
}

func refresh[T any](ctx context.Context, c *Client, namespace, key string, fn func(ctx context.Context) (T, error)) error {
	v, err := fn(ctx)
	if err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	full, err := c.key(ctx, namespace, key)
	if err != nil {
		return err
	}
	return c.group.Store().Set(ctx, full, b, c.ttl)
}

// Start starts the refetch scheduler.
func (c *Client) Start() {
	c.cron.Start()
}

// Stop stops the scheduler and waits for running jobs or ctx.
func (c *Client) Stop(ctx context.Context) error {
	done := c.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartFunc returns a startup hook.
func (c *Client) StartFunc() func(context.Context) error {
	return func(context.Context) error {
		c.Start()
		return nil
	}
}

// Shutdown returns a shutdown hook.
func (c *Client) Shutdown() func(context.Context) error {
	return c.Stop
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
