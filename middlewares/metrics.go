package middlewares

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/pkg/metrics"
)

// Metrics returns middleware that records request count, latency and in-flight
// requests, labelled by the matched route pattern rather than the raw path.
func Metrics(m *metrics.Metrics) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			done := m.InFlight()
			defer done()

			start := time.Now()
			err := next(c)

			status := c.ResponseWriter().Status()
			if err != nil {
				status = 500
				if he := internal.AsHTTPError(err); he != nil {
					status = he.StatusCode()
				}
			}

			var route string
			if rc := chi.RouteContext(c.Request().Context()); rc != nil {
				route = rc.RoutePattern()
			}
			m.ObserveHTTP(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}
