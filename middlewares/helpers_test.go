package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/blogfront/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// serve runs req through an app whose only route calls fn with a live context.
func serve(t *testing.T, req *http.Request, fn func(c internal.Context), opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()

	h := routes(func(r internal.Router) {
		h := func(c internal.Context) error {
			fn(c)
			return nil
		}
		r.GET(req.URL.Path, h)
		r.POST(req.URL.Path, h)
	})
	app := internal.New(append(opts, internal.WithHandlers(h))...)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}
