package internal

import (
	"context"

	"github.com/dmitrymomot/blogfront/pkg/session"
	"github.com/dmitrymomot/blogfront/pkg/toast"
)

// toastFlashKey names the flash cookie that carries toasts across a redirect.
const toastFlashKey = "toasts"

// scope is per-request state shared by every Context built for the same request:
// the middleware chain and the final handler each get their own Context value.
type scope struct {
	toasts  *toast.Queue
	session *session.Session
	loaded  bool
	hooked  bool
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) *scope {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return s
	}
	return nil
}
