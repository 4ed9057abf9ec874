package internal

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Router is the interface handlers use to declare routes.
//
// Pages are served on GET and every form action posts, so those are the only
// verbs exposed. Group, Route and With scope middleware such as auth guards
// and page metadata to a set of routes.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline group sharing middleware but not a prefix.
	Group(fn func(r Router))
	// Route creates a group mounted under pattern.
	Route(pattern string, fn func(r Router))
	// Use appends middleware for every route declared after it in this group.
	Use(mw ...Middleware)
	// With returns a router whose routes are wrapped by mw.
	With(mw ...Middleware) Router
	// Mount attaches a plain http.Handler at pattern.
	Mount(pattern string, h http.Handler)
}

// routerAdapter implements Router on top of chi.
type routerAdapter struct {
	router chi.Router
	app    *App
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Method(http.MethodGet, path, r.wrap(h, mw))
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Method(http.MethodPost, path, r.wrap(h, mw))
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(r.sub(cr))
	})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.router.Route(pattern, func(cr chi.Router) {
		fn(r.sub(cr))
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	r.router.Use(r.app.chain(mw)...)
}

func (r *routerAdapter) With(mw ...Middleware) Router {
	return r.sub(r.router.With(r.app.chain(mw)...))
}

func (r *routerAdapter) Mount(pattern string, h http.Handler) {
	r.router.Mount(pattern, h)
}

func (r *routerAdapter) sub(cr chi.Router) *routerAdapter {
	return &routerAdapter{router: cr, app: r.app}
}

// wrap applies route middleware so the first listed runs first, then binds
// the handler to a fresh request context.
func (r *routerAdapter) wrap(h HandlerFunc, mw []Middleware) http.Handler {
	for _, m := range slices.Backward(mw) {
		h = m(h)
	}
	return r.app.serve(h)
}

// serve adapts a HandlerFunc to net/http, routing returned errors to the
// application error handler.
func (a *App) serve(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		c := newContext(w, req, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) chain(mw []Middleware) []func(http.Handler) http.Handler {
	out := make([]func(http.Handler) http.Handler, 0, len(mw))
	for _, m := range mw {
		out = append(out, a.adaptMiddleware(m))
	}
	return out
}

// adaptMiddleware lets Context-based middleware sit in chi's stack. The
// downstream chain sees the request the middleware passes on, including any
// values it stored with Set.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.serve(mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		}))
	}
}
