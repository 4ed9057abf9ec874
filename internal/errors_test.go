package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/internal"
)

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		t.Parallel()
		got := internal.AsHTTPError(internal.ErrNotFound("Article not found"))
		require.NotNil(t, got)
		require.Equal(t, http.StatusNotFound, got.Code)
		require.Equal(t, "Article not found", got.Message)
	})

	t.Run("wrapped twice keeps fields", func(t *testing.T) {
		t.Parallel()
		he := internal.ErrForbidden("forbidden", internal.WithTitle("Admins only"))
		err := fmt.Errorf("outer: %w", fmt.Errorf("guard: %w", he))

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusForbidden, got.StatusCode())
		require.Equal(t, "Admins only", got.StatusText())
	})

	t.Run("plain and nil errors", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("plain error")))
		require.Nil(t, internal.AsHTTPError(nil))
	})
}

func TestErrorConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *internal.HTTPError
		code int
	}{
		{"bad request", internal.ErrBadRequest("bad"), http.StatusBadRequest},
		{"unauthorized", internal.ErrUnauthorized("sign in"), http.StatusUnauthorized},
		{"forbidden", internal.ErrForbidden("admins only"), http.StatusForbidden},
		{"not found", internal.ErrNotFound("no post"), http.StatusNotFound},
		{"too many requests", internal.ErrTooManyRequests("slow down"), http.StatusTooManyRequests},
		{"bad gateway", internal.ErrBadGateway("backend down"), http.StatusBadGateway},
		{"internal", internal.ErrInternal("oops"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.code, tt.err.StatusCode())
			require.Equal(t, http.StatusText(tt.code), tt.err.StatusText())
		})
	}

	t.Run("unwraps cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("dial tcp: connection refused")
		err := internal.ErrBadGateway("backend down", internal.WithError(cause), internal.WithRequestID("req-1"))
		require.ErrorIs(t, err, cause)
		require.Equal(t, "req-1", err.RequestID)
		require.Equal(t, "backend down", err.Error())
	})
}
