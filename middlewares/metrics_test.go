package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	app := internal.New(
		internal.WithMiddleware(middlewares.Metrics(m)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/blog/{id}", func(c internal.Context) error {
				return c.String(http.StatusOK, c.Param("id"))
			})
		})),
	)

	for _, path := range []string{"/blog/1", "/blog/2", "/missing"} {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP blogfront_http_requests_total Total number of HTTP requests handled.
# TYPE blogfront_http_requests_total counter
blogfront_http_requests_total{method="GET",route="/blog/{id}",status="200"} 2
blogfront_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	err := testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "blogfront_http_requests_total")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `blogfront_http_inflight_requests 0`)
}
