package middlewares

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/pkg/toast"
)

// Default guard targets.
const (
	DefaultLoginPath = "/auth/login"
	DefaultHomePath  = "/"
)

// RequireAuth redirects anonymous visitors to loginPath, remembering where they
// were headed in the "next" query parameter.
func RequireAuth(loginPath string) internal.Middleware {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if c.IsAuthenticated() {
				return next(c)
			}
			toast.Error(c.Context(), "Please sign in to continue.")
			target := loginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusSeeOther, target)
		}
	}
}

// RequireAdmin lets only administrators through. Anonymous visitors are sent to
// the login page, signed-in non-admins back to fallback.
func RequireAdmin(fallback string) internal.Middleware {
	if fallback == "" {
		fallback = DefaultHomePath
	}
	requireAuth := RequireAuth(DefaultLoginPath)
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		admin := func(c internal.Context) error {
			if !c.IsAdmin() {
				toast.Error(c.Context(), "You do not have access to the admin area.")
				return c.Redirect(http.StatusSeeOther, fallback)
			}
			return next(c)
		}
		return requireAuth(admin)
	}
}
