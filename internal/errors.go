package internal

import (
	"errors"
	"net/http"
)

// HTTPError is a handler failure with the status and message to show the visitor.
// The error handler renders it as a full error page or, for htmx requests, as an
// error toast.
type HTTPError struct {
	Err       error  // cause; logged, never shown
	Message   string // shown to the visitor
	Title     string // error page heading; defaults to the status text
	RequestID string
	Code      int
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

// StatusCode reports the HTTP status. Middlewares use it through a small
// interface so they do not depend on this type.
func (e *HTTPError) StatusCode() int { return e.Code }

// StatusText returns the title, falling back to the standard status text.
func (e *HTTPError) StatusText() string {
	if e.Title != "" {
		return e.Title
	}
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) { e.Err = err }
}

// WithTitle overrides the error page heading.
func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) { e.Title = title }
}

// WithRequestID attaches the request ID shown as a support reference.
func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) { e.RequestID = id }
}

func statusError(code int) func(string, ...HTTPErrorOption) *HTTPError {
	return func(message string, opts ...HTTPErrorOption) *HTTPError {
		return NewHTTPError(code, message, opts...)
	}
}

// Constructors for the statuses the front end produces.
var (
	ErrBadRequest      = statusError(http.StatusBadRequest)
	ErrUnauthorized    = statusError(http.StatusUnauthorized)
	ErrForbidden       = statusError(http.StatusForbidden)
	ErrNotFound        = statusError(http.StatusNotFound)
	ErrTooManyRequests = statusError(http.StatusTooManyRequests)
	ErrInternal        = statusError(http.StatusInternalServerError)
	ErrBadGateway      = statusError(http.StatusBadGateway)
)

// AsHTTPError extracts the HTTPError from an error chain, or returns nil.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}
