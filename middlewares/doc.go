// Package middlewares provides the HTTP middleware used by the blog front end.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing X-Request-ID from a proxy
// when present. Pair it with RequestIDExtractor so every log line carries it:
//
//	app := blogfront.New(
//	    blogfront.WithLogger("web", cfg.Log(), middlewares.RequestIDExtractor()),
//	    blogfront.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover and Timeout
//
// Recover converts panics into *PanicError and Timeout converts a missed deadline
// into *TimeoutError. Both are rendered by the application error handler:
//
//	blogfront.WithErrorHandler(func(c blogfront.Context, err error) error {
//	    switch {
//	    case middlewares.IsPanicError(err):
//	        return c.Render(500, views.ErrorPage(500, "Something went wrong"))
//	    case middlewares.IsTimeoutError(err):
//	        return c.Render(504, views.ErrorPage(504, "The server took too long to respond"))
//	    }
//	    ...
//	})
//
// Handlers pass GetTimeoutContext(c) to backend calls so the deadline reaches the API client.
//
// # Rate limiting
//
// RateLimit keeps a token bucket per client (user ID when signed in, IP otherwise)
// and rejects excess requests with a 429 HTTPError:
//
//	r.POST("/auth/register", h.register, middlewares.RateLimit(cfg.RateLimit,
//	    middlewares.WithRateLimitBurst(cfg.RateBurst),
//	    middlewares.WithRateLimitObserver(m.RateLimited),
//	))
//
// # Metrics
//
// Metrics records Prometheus request metrics labelled by route pattern.
//
// # Guards
//
// RequireAuth and RequireAdmin protect the profile page and the admin area.
// Anonymous visitors are redirected to the login page with an error toast.
//
// # Recommended Order
//
//	blogfront.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Metrics(m),
//	    middlewares.Recover(),
//	    middlewares.Timeout(cfg.RequestTimeout),
//	)
package middlewares
