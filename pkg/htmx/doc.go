// Package htmx reads htmx request headers and writes htmx response headers.
//
// Page handlers use IsHTMX to decide between a full document and a fragment,
// and render Config to attach out-of-band fragments such as toasts, field errors
// or the submit button of a validated form.
//
//	if htmx.IsHTMX(r) {
//		return c.Render(http.StatusOK, fragment, htmx.WithOOB(views.Toasts(ts, true)))
//	}
//
// Redirect and Location fall back to a plain 302 for regular requests.
package htmx
