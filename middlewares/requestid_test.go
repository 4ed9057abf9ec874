package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a UUID when not present", func(t *testing.T) {
		t.Parallel()

		var got string
		rec := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) {
			err := middlewares.RequestID()(func(c internal.Context) error {
				got = middlewares.GetRequestID(c)
				return nil
			})(c)
			require.NoError(t, err)
		})

		_, err := uuid.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, got, rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses the upstream header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := serve(t, req, func(c internal.Context) {
			_ = middlewares.RequestID()(func(internal.Context) error { return nil })(c)
		})

		assert.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("ignores oversized upstream IDs", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 500))
		rec := serve(t, req, func(c internal.Context) {
			_ = middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "gen" }))(
				func(internal.Context) error { return nil })(c)
		})

		assert.Equal(t, "gen", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom headers and response header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace", "trace-9")
		rec := serve(t, req, func(c internal.Context) {
			mw := middlewares.RequestID(
				middlewares.WithRequestIDHeaders("X-Trace"),
				middlewares.WithRequestIDResponseHeader("X-Trace-ID"),
			)
			_ = mw(func(internal.Context) error { return nil })(c)
		})

		assert.Equal(t, "trace-9", rec.Header().Get("X-Trace-ID"))
		assert.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("extractor sees the ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "rid-1")
		serve(t, req, func(c internal.Context) {
			_ = middlewares.RequestID()(func(c internal.Context) error {
				attr, ok := middlewares.RequestIDExtractor()(c.Context())
				require.True(t, ok)
				assert.Equal(t, "request_id", attr.Key)
				assert.Equal(t, "rid-1", attr.Value.String())

				id, ok := middlewares.RequestIDFromContext(c.Context())
				require.True(t, ok)
				assert.Equal(t, "rid-1", id)
				return nil
			})(c)
		})
	})

	t.Run("extractor without ID", func(t *testing.T) {
		t.Parallel()

		_, ok := middlewares.RequestIDExtractor()(httptest.NewRequest(http.MethodGet, "/", nil).Context())
		assert.False(t, ok)
	})
}
