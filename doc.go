// Package blogfront is the server-rendered front end of the blog platform.
//
// It serves public pages (home, blog list, article), the authentication flows
// (register, login, forgot password, profile) and the admin back office, and proxies
// every read and write to the blog backend REST API. It owns no persistent domain data:
// the only server-side state is the visitor session and a read-through query cache.
//
// # Quick Start
//
//	auth := handlers.NewAuthHandler(svc.Users)
//	blog := handlers.NewBlogHandler(svc, q)
//	admin := handlers.NewAdminHandler(svc, q)
//	rh := routes.New(handlers.Pages(auth, blog, admin))
//
//	app := blogfront.New(
//	    blogfront.WithLogger("web", cfg.Log(), middlewares.RequestIDExtractor()),
//	    blogfront.WithCookieOptions(cookie.WithSecret(cfg.CookieSecret)),
//	    blogfront.WithSession(session.NewCacheStore(store)),
//	    blogfront.WithHandlers(rh, auth, blog, admin),
//	    blogfront.WithToastRenderer(handlers.Toasts),
//	    blogfront.WithErrorHandler(handlers.ErrorHandler),
//	    blogfront.WithNotFoundHandler(rh.NotFound()),
//	)
//
//	if err := app.Run(cfg.Addr, blogfront.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] and receive dependencies via constructor injection:
//
//	type AuthHandler struct {
//	    svc *services.Services
//	}
//
//	func (h *AuthHandler) Routes(r blogfront.Router) {
//	    r.GET("/auth/register", h.showRegister)
//	    r.POST("/auth/register", h.register)
//	}
//
// # Layout
//
//   - internal: App, Context, Router, sessions, toasts and the server runtime
//   - middlewares: request ID, recover, timeout, rate limit, metrics, auth guards
//   - pkg/apiclient, services: backend REST client and one function per backend operation
//   - pkg/validator, pkg/form, forms: rule engine, form controller and the concrete forms
//   - pkg/mutation, pkg/query, pkg/toast: write orchestration, cached reads, notifications
//   - views, handlers, routes: templ components, page handlers and the route table
//   - pkg/cache, pkg/session, pkg/cookie, pkg/redis: session and cache storage
//   - pkg/htmx, pkg/markdown, pkg/sanitizer, pkg/slug: request helpers and content processing
//   - pkg/logger, pkg/metrics, pkg/health: slog with Sentry, Prometheus, probes
//   - config, cmd/blogfront: koanf configuration and the executable
package blogfront
