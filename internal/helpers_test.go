package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/blogfront/internal"
)

type ctxKey struct{}

func TestTypedHelpers(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?page=3&bad=x&ok=true&ratio=0.5", nil)
	requestVia(t, req, nil, func(c internal.Context) {
		assert.Equal(t, 3, internal.Query[int](c, "page"))
		assert.Equal(t, 0, internal.Query[int](c, "bad"))
		assert.True(t, internal.Query[bool](c, "ok"))
		assert.InDelta(t, 0.5, internal.Query[float64](c, "ratio"), 0.0001)
		assert.Equal(t, 1, internal.QueryDefault(c, "missing", 1))
		assert.Equal(t, 1, internal.QueryDefault(c, "bad", 1))
		assert.EqualValues(t, 3, internal.QueryDefault[int64](c, "page", 1))

		c.Set(ctxKey{}, "value")
		assert.Equal(t, "value", internal.ContextValue[string](c, ctxKey{}))
		assert.Equal(t, 0, internal.ContextValue[int](c, ctxKey{}))
	})
}
