package internal

import "github.com/dmitrymomot/blogfront/pkg/toast"

// Handler declares routes on a router.
//
// Example:
//
//	type AuthHandler struct {
//	    svc *services.Services
//	}
//
//	func (h *AuthHandler) Routes(r blogfront.Router) {
//	    r.GET("/auth/login", h.showLogin)
//	    r.POST("/auth/login", h.login)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Auth(next blogfront.HandlerFunc) blogfront.HandlerFunc {
//	    return func(c blogfront.Context) error {
//	        if !c.IsAuthenticated() {
//	            return c.Redirect(http.StatusFound, "/auth/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// ToastRenderer builds the out-of-band component that shows toasts on htmx responses.
type ToastRenderer func(toasts []toast.Toast) Component
