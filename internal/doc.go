// Package internal provides the core types and implementation of the blogfront web layer.
//
// Import "github.com/dmitrymomot/blogfront" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: HTTP routing, middleware, request scope and graceful shutdown
//   - Context: request/response access, rendering, cookies, sessions and toasts
//   - Router: interface handlers use to declare routes and groups
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler returning an error
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - ErrorHandler: turns handler errors into responses
//
// # Request scope
//
// Every middleware and the final handler get their own Context value, but they share one
// per-request scope: the toast queue and the loaded session. Toasts pushed with
// toast.Success or toast.Error (Context implements context.Context) are rendered by the
// page layout, appended out-of-band to htmx responses through the ToastRenderer, or carried
// to the next page in an encrypted flash cookie when the handler redirects.
//
// # Sessions
//
// Sessions are loaded lazily from the "__sid" cookie and saved right before the response
// is written if they changed. SignIn always rotates the session ID.
//
//	func (h *AuthHandler) login(c blogfront.Context) error {
//	    id, err := h.svc.Users.Login(c, params)
//	    if err != nil {
//	        return err
//	    }
//	    if err := c.SignIn(id.Token, id.User.ID, id.User.Name, id.User.Admin); err != nil {
//	        return err
//	    }
//	    return c.Redirect(http.StatusSeeOther, "/")
//	}
//
// # htmx
//
// Render converts every status to 200 for htmx requests so error fragments are swapped, applies
// htmx.RenderOption headers and appends out-of-band components. Redirect answers htmx with
// HX-Redirect.
package internal
