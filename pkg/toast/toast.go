// Package toast collects transient notifications for the current request.
//
// Handlers push messages through the request context; the layout renders them,
// or the toasts middleware carries them over a redirect in a flash cookie.
//
//	toast.Success(ctx, res.Message)
//	toast.Error(ctx, err.Error())
package toast

import (
	"context"
	"sync"
	"time"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 4 * time.Second

// Kind is the severity of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is a single notification.
type Toast struct {
	Kind     Kind          `json:"kind"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Timeout returns the auto-dismiss duration.
func (t Toast) Timeout() time.Duration {
	if t.Duration <= 0 {
		return DefaultDuration
	}
	return t.Duration
}

// Queue is the per-request list of pending toasts.
type Queue struct {
	items []Toast
	mu    sync.Mutex
}

// Push appends toasts with a non-empty message.
func (q *Queue) Push(ts ...Toast) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, t := range ts {
		if t.Message != "" {
			q.items = append(q.items, t)
		}
	}
}

// Drain returns all queued toasts and empties the queue.
func (q *Queue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// ContextKey stores the *Queue in a request context.
type ContextKey struct{}

// WithQueue returns ctx carrying q.
func WithQueue(ctx context.Context, q *Queue) context.Context {
	return context.WithValue(ctx, ContextKey{}, q)
}

// FromContext returns the queue of ctx or nil.
func FromContext(ctx context.Context) *Queue {
	q, _ := ctx.Value(ContextKey{}).(*Queue)
	return q
}

// Push queues t on the request. It is a no-op without a queue in ctx.
func Push(ctx context.Context, t Toast) {
	if q := FromContext(ctx); q != nil {
		q.Push(t)
	}
}

// Success queues a positive notification.
func Success(ctx context.Context, msg string) {
	Push(ctx, Toast{Kind: KindSuccess, Message: msg})
}

// Error queues a negative notification.
func Error(ctx context.Context, msg string) {
	Push(ctx, Toast{Kind: KindError, Message: msg})
}
