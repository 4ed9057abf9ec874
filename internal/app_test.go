package internal_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/pkg/cache"
	"github.com/dmitrymomot/blogfront/pkg/cookie"
	"github.com/dmitrymomot/blogfront/pkg/htmx"
	"github.com/dmitrymomot/blogfront/pkg/session"
	"github.com/dmitrymomot/blogfront/pkg/toast"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// routes adapts a func to internal.Handler.
type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// text renders a fixed string.
type text string

func (s text) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

func toastList(ts []toast.Toast) internal.Component {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, fmt.Sprintf("%s:%s", t.Kind, t.Message))
	}
	return text(`<div id="toasts" hx-swap-oob="beforeend">` + strings.Join(parts, ",") + `</div>`)
}

// requestVia serves req through a one-route app and calls fn inside the handler.
func requestVia(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context)) *httptest.ResponseRecorder {
	t.Helper()

	h := routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			fn(c)
			return nil
		})
	})
	app := internal.New(append(opts, internal.WithHandlers(h))...)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func newSessionApp(t *testing.T, h internal.Handler) *internal.App {
	t.Helper()
	mem := cache.NewMemory(cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = mem.Close() })

	return internal.New(
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithSession(session.NewCacheStore(mem)),
		internal.WithToastRenderer(toastList),
		internal.WithHandlers(h),
	)
}

func TestNotFoundHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithNotFoundHandler(func(c internal.Context) error {
		return c.Render(http.StatusNotFound, text("not found page"))
	}))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found page", w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	h := routes(func(r internal.Router) {
		r.GET("/boom", func(c internal.Context) error {
			return internal.ErrForbidden("admins only")
		})
	})
	app := internal.New(
		internal.WithHandlers(h),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			he := internal.AsHTTPError(err)
			require.NotNil(t, he)
			return c.String(he.Code, he.Message)
		}),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "admins only", w.Body.String())
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("full page ignores htmx options", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, []internal.Option{internal.WithToastRenderer(toastList)}, func(c internal.Context) {
			toast.Success(c, "queued")
			require.NoError(t, c.Render(http.StatusCreated, text("page"), htmx.WithPushURL("/x")))
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "page", w.Body.String())
		assert.Empty(t, w.Header().Get(htmx.HeaderHXPushURL))
	})

	t.Run("htmx gets headers oob and toasts", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		w := requestVia(t, req, []internal.Option{internal.WithToastRenderer(toastList)}, func(c internal.Context) {
			toast.Error(c, "Email taken")
			require.NoError(t, c.Render(http.StatusBadRequest, text("fragment"),
				htmx.WithPushURL("/x"),
				htmx.WithOOB(text("<b>oob</b>")),
			))
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/x", w.Header().Get(htmx.HeaderHXPushURL))
		assert.Equal(t, `fragment<b>oob</b><div id="toasts" hx-swap-oob="beforeend">error:Email taken</div>`, w.Body.String())
	})

	t.Run("partial for htmx only", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		w := requestVia(t, req, nil, func(c internal.Context) {
			require.NoError(t, c.RenderPartial(http.StatusOK, text("full"), text("partial")))
		})
		assert.Equal(t, "partial", w.Body.String())
	})
}

func TestRedirectCarriesToasts(t *testing.T) {
	t.Parallel()

	var seen []toast.Toast
	h := routes(func(r internal.Router) {
		r.POST("/save", func(c internal.Context) error {
			toast.Success(c, "Saved")
			return c.Redirect(http.StatusSeeOther, "/next")
		})
		r.GET("/next", func(c internal.Context) error {
			seen = c.Toasts().Drain()
			return c.NoContent(http.StatusOK)
		})
	})
	app := newSessionApp(t, h)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/save", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/next", w.Header().Get("Location"))

	next := httptest.NewRequest(http.MethodGet, "/next", nil)
	for _, ck := range w.Result().Cookies() {
		next.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	app.ServeHTTP(w, next)

	require.Len(t, seen, 1)
	assert.Equal(t, toast.KindSuccess, seen[0].Kind)
	assert.Equal(t, "Saved", seen[0].Message)
}

func TestHTMXRedirect(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(htmx.HeaderHXRequest, "true")
	w := requestVia(t, req, nil, func(c internal.Context) {
		require.NoError(t, c.Redirect(http.StatusFound, "/auth/login"))
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get(htmx.HeaderHXRedirect))
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	h := routes(func(r internal.Router) {
		r.POST("/login", func(c internal.Context) error {
			require.NoError(t, c.SignIn("tok-1", "u1", "Ann", true))
			return c.NoContent(http.StatusNoContent)
		})
		r.GET("/me", func(c internal.Context) error {
			return c.String(http.StatusOK, fmt.Sprintf("%s|%s|%s|%t|%t",
				c.Token(), c.UserID(), c.UserName(), c.IsAuthenticated(), c.IsAdmin()))
		})
		r.POST("/logout", func(c internal.Context) error {
			require.NoError(t, c.SignOut())
			return c.NoContent(http.StatusNoContent)
		})
	})
	app := newSessionApp(t, h)

	do := func(method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodGet, "/me", nil)
	assert.Equal(t, "|||false|false", w.Body.String())

	w = do(http.MethodPost, "/login", nil)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "__sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w = do(http.MethodGet, "/me", cookies)
	assert.Equal(t, "tok-1|u1|Ann|true|true", w.Body.String())

	w = do(http.MethodPost, "/logout", cookies)
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Equal(t, -1, cleared[0].MaxAge)

	w = do(http.MethodGet, "/me", cookies)
	assert.Equal(t, "|||false|false", w.Body.String())
}

func TestSessionNotConfigured(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	requestVia(t, req, nil, func(c internal.Context) {
		_, err := c.Session()
		require.ErrorIs(t, err, session.ErrNotConfigured)
		require.ErrorIs(t, c.SignIn("t", "u", "n", false), session.ErrNotConfigured)
		require.False(t, c.IsAuthenticated())
		require.Empty(t, c.Token())
	})
}

func TestMiddlewareAndGroups(t *testing.T) {
	t.Parallel()

	tag := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.SetHeader("X-"+name, "1")
				return next(c)
			}
		}
	}
	h := routes(func(r internal.Router) {
		r.Route("/auth/admin", func(r internal.Router) {
			r.Use(tag("Admin"))
			r.GET("/users/manage", func(c internal.Context) error {
				return c.String(http.StatusOK, "users")
			})
		})
		r.With(tag("Limited")).POST("/auth/login", func(c internal.Context) error {
			return c.String(http.StatusOK, "login")
		})
	})
	app := internal.New(internal.WithMiddleware(tag("Global")), internal.WithHandlers(h))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/admin/users/manage", nil))
	assert.Equal(t, "users", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Global"))
	assert.Equal(t, "1", w.Header().Get("X-Admin"))

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, "login", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Limited"))
	assert.Empty(t, w.Header().Get("X-Admin"))
}

func TestMountAndHealth(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "metrics")
		})),
		internal.WithHealthChecks(internal.WithReadinessCheck("backend", func(context.Context) error {
			return fmt.Errorf("down")
		})),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "metrics", w.Body.String())

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
