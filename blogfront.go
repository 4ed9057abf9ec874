package blogfront

import (
	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/pkg/logger"
)

// Framework types used by the executable and by handler packages that prefer
// the root import.
type (
	App              = internal.App
	Router           = internal.Router
	Context          = internal.Context
	Handler          = internal.Handler
	HandlerFunc      = internal.HandlerFunc
	Middleware       = internal.Middleware
	ErrorHandler     = internal.ErrorHandler
	ToastRenderer    = internal.ToastRenderer
	Component        = internal.Component
	Option           = internal.Option
	RunOption        = internal.RunOption
	HealthOption     = internal.HealthOption
	SessionOption    = internal.SessionOption
	ContextExtractor = logger.ContextExtractor
	HTTPError        = internal.HTTPError
	HTTPErrorOption  = internal.HTTPErrorOption
)

// New creates the application. The App is immutable after creation.
//
//	app := blogfront.New(
//	    blogfront.WithMiddleware(middlewares.RequestID()),
//	    blogfront.WithHandlers(rh, auth, blog, admin),
//	)
//	err := app.Run(":8080", blogfront.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Application options.
var (
	WithMiddleware      = internal.WithMiddleware
	WithHandlers        = internal.WithHandlers
	WithStaticFiles     = internal.WithStaticFiles
	WithMount           = internal.WithMount
	WithErrorHandler    = internal.WithErrorHandler
	WithNotFoundHandler = internal.WithNotFoundHandler
	WithToastRenderer   = internal.WithToastRenderer
	WithHealthChecks    = internal.WithHealthChecks
	WithReadinessCheck  = internal.WithReadinessCheck
	WithLogger          = internal.WithLogger
	WithCustomLogger    = internal.WithCustomLogger
	WithCookieOptions   = internal.WithCookieOptions
	WithSession         = internal.WithSession
	WithSessionMaxAge   = internal.WithSessionMaxAge
	WithSessionSecure   = internal.WithSessionSecure
	WithSessionSameSite = internal.WithSessionSameSite
)

// Run options.
var (
	Address         = internal.Address
	Logger          = internal.Logger
	ShutdownTimeout = internal.ShutdownTimeout
	StartupHook     = internal.StartupHook
	ShutdownHook    = internal.ShutdownHook
	WithContext     = internal.WithContext
)

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// AsHTTPError extracts the HTTPError from an error chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Status constructors and options, see internal.HTTPError.
var (
	ErrBadRequest      = internal.ErrBadRequest
	ErrUnauthorized    = internal.ErrUnauthorized
	ErrForbidden       = internal.ErrForbidden
	ErrNotFound        = internal.ErrNotFound
	ErrTooManyRequests = internal.ErrTooManyRequests
	ErrBadGateway      = internal.ErrBadGateway
	ErrInternal        = internal.ErrInternal

	WithError     = internal.WithError
	WithRequestID = internal.WithRequestID
	WithTitle     = internal.WithTitle
)
