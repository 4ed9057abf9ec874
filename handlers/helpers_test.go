package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/handlers"
	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/pkg/cache"
	"github.com/dmitrymomot/blogfront/pkg/cookie"
	"github.com/dmitrymomot/blogfront/pkg/query"
	"github.com/dmitrymomot/blogfront/pkg/session"
	"github.com/dmitrymomot/blogfront/routes"
	"github.com/dmitrymomot/blogfront/services"
	"github.com/dmitrymomot/blogfront/views"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// newApp wires the full front end against the backend at baseURL.
func newApp(t *testing.T, baseURL string) *internal.App {
	t.Helper()

	mem := cache.NewMemory(cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = mem.Close() })

	client, err := apiclient.New(apiclient.Config{BaseURL: baseURL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	svc := services.New(client)
	q := query.New(mem)
	auth := handlers.NewAuthHandler(svc.Users)
	blog := handlers.NewBlogHandler(svc, q)
	admin := handlers.NewAdminHandler(svc, q)
	rh := routes.New(handlers.Pages(auth, blog, admin))

	return internal.New(
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithSession(session.NewCacheStore(mem)),
		internal.WithToastRenderer(handlers.Toasts),
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithNotFoundHandler(rh.NotFound()),
		internal.WithHandlers(rh, auth, blog, admin),
		internal.WithStaticFiles(views.StaticPath, views.Assets, "static"),
	)
}

// newBackend starts a fake backend API.
func newBackend(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type request struct {
	method  string
	path    string
	form    url.Values
	htmx    bool
	target  string
	cookies []*http.Cookie
}

func do(app http.Handler, r request) *httptest.ResponseRecorder {
	method := r.method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, r.path, strings.NewReader(r.form.Encode()))
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if r.htmx {
		req.Header.Set("HX-Request", "true")
		if r.target != "" {
			req.Header.Set("HX-Target", r.target)
		}
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

// signIn logs in through the login form and returns the session cookies.
func signIn(t *testing.T, app http.Handler) []*http.Cookie {
	t.Helper()
	w := do(app, request{
		method: http.MethodPost,
		path:   views.LoginPath,
		form:   url.Values{forms.Email: {"ann@example.com"}, forms.Password: {"secret1"}},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	return w.Result().Cookies()
}

// loginRoute answers the backend login for ann, who is an admin when admin is true.
func loginRoute(mux *http.ServeMux, admin bool) {
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "tok-ann",
			"user":  map[string]any{"_id": "u1", "name": "Ann", "email": "ann@example.com", "admin": admin},
		})
	})
}
