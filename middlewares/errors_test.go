package middlewares_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/blogfront/middlewares"
)

func TestErrorTypes(t *testing.T) {
	t.Parallel()

	pe := &middlewares.PanicError{Value: 42}
	te := &middlewares.TimeoutError{Duration: 100 * time.Millisecond}

	t.Run("messages", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "panic: 42", pe.Error())
		assert.Equal(t, "panic: <nil>", (&middlewares.PanicError{}).Error())
		assert.Equal(t, "request timeout after 100ms", te.Error())
	})

	t.Run("status codes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusInternalServerError, pe.StatusCode())
		assert.Equal(t, http.StatusGatewayTimeout, te.StatusCode())
	})

	tests := []struct {
		name      string
		err       error
		isPanic   bool
		isTimeout bool
	}{
		{name: "panic", err: pe, isPanic: true},
		{name: "wrapped panic", err: fmt.Errorf("render: %w", pe), isPanic: true},
		{name: "timeout", err: te, isTimeout: true},
		{name: "wrapped timeout", err: fmt.Errorf("fetch: %w", te), isTimeout: true},
		{name: "plain", err: errors.New("plain")},
		{name: "nil", err: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.isPanic, middlewares.IsPanicError(tt.err))
			assert.Equal(t, tt.isTimeout, middlewares.IsTimeoutError(tt.err))

			got, ok := middlewares.AsPanicError(tt.err)
			assert.Equal(t, tt.isPanic, ok)
			if ok {
				assert.Same(t, pe, got)
			}
			gotT, ok := middlewares.AsTimeoutError(tt.err)
			assert.Equal(t, tt.isTimeout, ok)
			if ok {
				assert.Same(t, te, gotT)
			}
		})
	}
}
