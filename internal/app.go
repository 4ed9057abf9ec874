package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/blogfront/pkg/cookie"
	"github.com/dmitrymomot/blogfront/pkg/health"
	"github.com/dmitrymomot/blogfront/pkg/logger"
	"github.com/dmitrymomot/blogfront/pkg/toast"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	toastRenderer           ToastRenderer
	healthConfig            *healthConfig
	logger                  *slog.Logger
	cookieManager           *cookie.Manager
	sessionManager          *SessionManager
	middlewares             []Middleware
	handlers                []Handler
	mounts                  []mount
}

// mount represents a raw http.Handler mount point (static files, metrics).
type mount struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := blogfront.New(
//	    blogfront.WithMiddleware(middlewares.RequestID()),
//	    blogfront.WithHandlers(
//	        handlers.NewAuth(svc),
//	        handlers.NewBlog(svc, q),
//	    ),
//	)
func New(opts ...Option) *App {
	cm, _ := cookie.New() // no secret: never fails
	a := &App{
		router:        chi.NewRouter(),
		logger:        logger.Nope(),
		cookieManager: cm,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.sessionManager != nil {
		a.sessionManager.SetLogger(a.logger)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes App usable as an http.Handler (tests, custom servers).
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080",
//	    blogfront.Logger(log),
//	    blogfront.StartupHook(q.StartFunc()),
//	    blogfront.ShutdownHook(q.Shutdown()),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := runtimeConfig{handler: a.router, address: addr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return runServer(cfg)
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	// Request scope must wrap everything else so middleware and handler contexts share it.
	a.router.Use(a.scopeMiddleware)

	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks,
			health.WithLogger(a.logger)))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// scopeMiddleware attaches the per-request scope and restores toasts carried over a redirect.
func (a *App) scopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := &scope{toasts: &toast.Queue{}}
		if _, err := r.Cookie(cookie.FlashPrefix + toastFlashKey); err == nil {
			var carried []toast.Toast
			if err := a.cookieManager.Flash(w, r, toastFlashKey, &carried); err != nil {
				a.logger.WarnContext(r.Context(), "failed to read toast flash", slog.Any("error", err))
			}
			s.toasts.Push(carried...)
		}

		ctx := context.WithValue(r.Context(), scopeKey{}, s)
		ctx = toast.WithQueue(ctx, s.toasts)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			a.logger.ErrorContext(c.Context(), "error handler failed", slog.Any("error", herr))
		}
		return
	}
	http.Error(c.Response(), "Internal Server Error", http.StatusInternalServerError)
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	blogfront.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
