package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/pkg/cache"
	"github.com/dmitrymomot/blogfront/pkg/cookie"
	"github.com/dmitrymomot/blogfront/pkg/session"
)

func TestAuthGuards(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory(cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = mem.Close() })

	app := internal.New(
		internal.WithCookieOptions(cookie.WithSecret("0123456789abcdef0123456789abcdef")),
		internal.WithSession(session.NewCacheStore(mem)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/signin", func(c internal.Context) error {
				if err := c.SignIn("tok", "u1", "Ann", c.Query("admin") == "1"); err != nil {
					return err
				}
				return c.NoContent(http.StatusNoContent)
			})
			r.GET("/auth/profile", func(c internal.Context) error {
				return c.String(http.StatusOK, "profile of "+c.UserName())
			}, middlewares.RequireAuth(""))
			r.Route("/auth/admin", func(r internal.Router) {
				r.Use(middlewares.RequireAdmin(""))
				r.GET("/users/manage", func(c internal.Context) error {
					return c.String(http.StatusOK, "users")
				})
			})
		})),
	)

	do := func(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		return w
	}
	signIn := func(t *testing.T, admin bool) []*http.Cookie {
		t.Helper()
		path := "/signin"
		if admin {
			path += "?admin=1"
		}
		w := do(path, nil)
		require.Equal(t, http.StatusNoContent, w.Code)
		return w.Result().Cookies()
	}

	t.Run("anonymous visitor is sent to login", func(t *testing.T) {
		t.Parallel()

		w := do("/auth/profile", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/auth/login?next=%2Fauth%2Fprofile", w.Header().Get("Location"))
	})

	t.Run("signed-in visitor passes", func(t *testing.T) {
		t.Parallel()

		w := do("/auth/profile", signIn(t, false))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "profile of Ann", w.Body.String())
	})

	t.Run("non-admin is sent home", func(t *testing.T) {
		t.Parallel()

		w := do("/auth/admin/users/manage", signIn(t, false))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("anonymous admin request is sent to login", func(t *testing.T) {
		t.Parallel()

		w := do("/auth/admin/users/manage", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "/auth/login")
	})

	t.Run("admin passes", func(t *testing.T) {
		t.Parallel()

		w := do("/auth/admin/users/manage", signIn(t, true))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "users", w.Body.String())
	})
}
