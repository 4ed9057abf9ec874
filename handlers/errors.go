package handlers

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/pkg/htmx"
	"github.com/dmitrymomot/blogfront/pkg/toast"
	"github.com/dmitrymomot/blogfront/views"
)

// ErrorHandler renders handler errors. Fragment requests get an error toast and
// keep the current markup; page requests get the error page in the route layout.
// An expired backend session signs the visitor out and sends them to the login page.
func ErrorHandler(c internal.Context, err error) error {
	code, msg := classify(err)

	attrs := []any{"status", code, "path", c.Request().URL.Path, "error", err}
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", attrs...)
	} else {
		c.LogDebug("request rejected", attrs...)
	}

	if code == http.StatusUnauthorized && c.IsAuthenticated() {
		if serr := c.SignOut(); serr != nil {
			c.LogWarn("sign out failed", "error", serr)
		}
		toast.Error(c.Context(), msg)
		return c.Redirect(http.StatusSeeOther, views.LoginPath+"?next="+url.QueryEscape(c.Request().URL.RequestURI()))
	}

	if htmx.IsPartial(c.Request()) {
		toast.Error(c.Context(), msg)
		return c.Render(code, views.Empty(), htmx.WithReswap(htmx.SwapNone))
	}
	return render(c, code, views.ErrorContent(code, msg, middlewares.GetRequestID(c)))
}

func classify(err error) (int, string) {
	switch {
	case middlewares.IsPanicError(err):
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	case middlewares.IsTimeoutError(err):
		return http.StatusGatewayTimeout, "The request took too long. Please try again."
	}
	if he := internal.AsHTTPError(err); he != nil {
		msg := he.Message
		if msg == "" {
			msg = he.StatusText()
		}
		return he.Code, msg
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
