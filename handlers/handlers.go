// Package handlers implements the pages and form actions of the blog front end.
package handlers

import (
	"context"
	"errors"
	"maps"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/pkg/form"
	"github.com/dmitrymomot/blogfront/pkg/htmx"
	"github.com/dmitrymomot/blogfront/pkg/query"
	"github.com/dmitrymomot/blogfront/pkg/toast"
	"github.com/dmitrymomot/blogfront/routes"
	"github.com/dmitrymomot/blogfront/views"
)

// pageSize is the number of items per list page.
const pageSize = 10

// apiCtx returns the context for backend calls: bounded by the request timeout
// and carrying the visitor's API token.
func apiCtx(c internal.Context) context.Context {
	return apiclient.WithToken(middlewares.GetTimeoutContext(c), c.Token())
}

func chrome(c internal.Context) views.Chrome {
	return views.Chrome{
		UserName:      c.UserName(),
		Path:          c.Request().URL.Path,
		Authenticated: c.IsAuthenticated(),
		Admin:         c.IsAdmin(),
	}
}

func meta(c internal.Context) views.Meta {
	m := internal.ContextValue[views.Meta](c, views.MetaKey{})
	if m.Layout == nil {
		m.Layout = views.Page
	}
	return m
}

// render picks the fragment the client asked for. htmx requests targeting the
// main area or the admin outlet get only their part; everything else gets the
// full document from the route layout.
func render(c internal.Context, status int, content templ.Component, opts ...htmx.RenderOption) error {
	m := meta(c)
	ch := chrome(c)

	if htmx.IsPartial(c.Request()) {
		switch htmx.Target(c.Request()) {
		case views.AdminOutletID:
			return c.Render(status, content, opts...)
		case views.MainID:
			if m.Shell != nil {
				return c.Render(status, m.Shell(ch, content), opts...)
			}
			return c.Render(status, content, opts...)
		}
	}
	return c.Render(status, m.Layout(m.Title, ch, content), opts...)
}

// fragment renders a component for htmx requests and the full page otherwise.
// It is used by form actions whose htmx response replaces only the form.
func fragment(c internal.Context, status int, part, full templ.Component, opts ...htmx.RenderOption) error {
	if htmx.IsHTMX(c.Request()) {
		return c.Render(status, part, opts...)
	}
	return render(c, status, full)
}

// backendError maps a failed read to an HTTP error for the error handler.
func backendError(c internal.Context, err error, what string) error {
	switch {
	case apiclient.IsNotFound(err):
		return internal.ErrNotFound(what+" not found", internal.WithError(err))
	case apiclient.IsUnauthorized(err):
		return internal.ErrUnauthorized("Your session has expired. Please sign in again.", internal.WithError(err))
	case apiclient.IsTransport(err):
		return internal.ErrBadGateway(err.Error(), internal.WithError(err))
	}
	c.LogError("backend request failed", "error", err)
	return internal.ErrBadGateway("The blog service returned an error.", internal.WithError(err))
}

// seeOther redirects after a successful form post.
func seeOther(c internal.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}

func isInvalid(err error) bool {
	return errors.Is(err, form.ErrInvalid)
}

// actionError maps a failed mutation to an HTTP error. Backend rejections keep
// their status and message so the visitor sees why.
func actionError(c internal.Context, err error) error {
	var ae *apiclient.APIError
	if errors.As(err, &ae) && ae.Status >= 400 && ae.Status < 500 {
		he := internal.NewHTTPError(ae.Status, ae.Error())
		he.Err = err
		return he
	}
	return backendError(c, err, "Resource")
}

// invalidate drops cached public reads after a change.
func invalidate(c internal.Context, q *query.Client, namespaces ...string) {
	if err := q.Invalidate(c.Context(), namespaces...); err != nil {
		c.LogWarn("failed to invalidate query cache", "namespaces", namespaces, "error", err)
	}
}

// pageSource is implemented by every handler that serves table pages.
type pageSource interface {
	Pages() routes.Pages
}

// Pages merges the page handlers of all sources for routes.New.
func Pages(sources ...pageSource) routes.Pages {
	out := routes.Pages{}
	for _, s := range sources {
		maps.Copy(out, s.Pages())
	}
	return out
}

// Toasts is the app ToastRenderer.
func Toasts(ts []toast.Toast) internal.Component {
	return views.Toasts(ts)
}
