package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
)

func TestRateLimit(t *testing.T) {
	t.Parallel()

	newApp := func(limited *atomic.Int32, opts ...middlewares.RateLimitOption) *internal.App {
		opts = append(opts, middlewares.WithRateLimitObserver(func() { limited.Add(1) }))
		return internal.New(
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				if he := internal.AsHTTPError(err); he != nil {
					return c.String(he.StatusCode(), he.Message)
				}
				return c.String(http.StatusInternalServerError, err.Error())
			}),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.POST("/auth/register", func(c internal.Context) error {
					return c.String(http.StatusOK, "ok")
				}, middlewares.RateLimit(0.001, opts...))
			})),
		)
	}
	post := func(app *internal.App, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		return w
	}

	t.Run("allows burst then rejects", func(t *testing.T) {
		t.Parallel()

		var limited atomic.Int32
		app := newApp(&limited, middlewares.WithRateLimitBurst(2))

		assert.Equal(t, http.StatusOK, post(app, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, post(app, "10.0.0.1").Code)

		w := post(app, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.EqualValues(t, 1, limited.Load())
	})

	t.Run("buckets are per client", func(t *testing.T) {
		t.Parallel()

		var limited atomic.Int32
		app := newApp(&limited, middlewares.WithRateLimitBurst(1))

		assert.Equal(t, http.StatusOK, post(app, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, post(app, "10.0.0.2").Code)
		assert.Equal(t, http.StatusTooManyRequests, post(app, "10.0.0.1").Code)
	})

	t.Run("custom key", func(t *testing.T) {
		t.Parallel()

		var limited atomic.Int32
		app := newApp(&limited,
			middlewares.WithRateLimitBurst(1),
			middlewares.WithRateLimitKey(internal.NewExtractor(internal.FromHeader("X-Client"))),
		)

		assert.Equal(t, http.StatusOK, post(app, "10.0.0.1").Code)
		// No X-Client header: the request is not limited.
		assert.Equal(t, http.StatusOK, post(app, "10.0.0.1").Code)
		assert.Zero(t, limited.Load())
	})
}
