package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/blogfront/pkg/cookie"
	"github.com/dmitrymomot/blogfront/pkg/htmx"
	"github.com/dmitrymomot/blogfront/pkg/session"
	"github.com/dmitrymomot/blogfront/pkg/toast"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	// Calls ParseForm internally on first access.
	Form(name string) string

	// FormValues returns the parsed urlencoded body merged with the query string.
	FormValues() (url.Values, error)

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	// Handles both regular HTTP redirects and htmx requests.
	// Pending toasts are carried to the next page in a flash cookie.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	// The error should be returned from the handler to trigger the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// IsHTMX returns true if the request originated from htmx.
	IsHTMX() bool

	// Render renders a component with the given status code.
	// For htmx requests: always uses HTTP 200 (htmx requires 2xx for swapping),
	// applies the render options and appends pending toasts out-of-band.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders different components based on request type.
	// For htmx requests: renders partial with HTTP 200.
	// For regular requests: renders fullPage with the provided status code.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Written returns true if a response has already been written.
	Written() bool

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	// The value can be retrieved using Get or from c.Context().Value(key).
	Set(key any, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key is not found.
	Get(key any) any

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// SetCookie sets a plain cookie.
	SetCookie(name, value string, maxAge int)

	// DeleteCookie removes a cookie.
	DeleteCookie(name string)

	// CookieSigned returns a signed cookie value.
	// Returns cookie.ErrNoSecret if no secret is configured.
	CookieSigned(name string) (string, error)

	// SetCookieSigned sets a signed cookie.
	// Returns cookie.ErrNoSecret if no secret is configured.
	SetCookieSigned(name, value string, maxAge int) error

	// Flash reads and deletes a flash message.
	// Returns cookie.ErrNoSecret if no secret is configured.
	Flash(key string, dest any) error

	// SetFlash sets a flash message.
	// Returns cookie.ErrNoSecret if no secret is configured.
	SetFlash(key string, value any) error

	// Toasts returns the notification queue of this request.
	Toasts() *toast.Queue

	// Session returns the current session.
	// Returns session.ErrNotConfigured if WithSession was not called.
	// Returns nil, nil if the visitor has no session yet.
	Session() (*session.Session, error)

	// SignIn stores the backend token and user summary in a freshly rotated session.
	SignIn(token, userID, name string, admin bool) error

	// SignOut destroys the session and clears the cookie.
	SignOut() error

	// Token returns the backend bearer token of the signed-in user, or "".
	Token() string

	// UserID returns the signed-in user's ID, or "".
	UserID() string

	// UserName returns the signed-in user's display name, or "".
	UserName() string

	// IsAuthenticated returns true if a backend token is stored in the session.
	IsAuthenticated() bool

	// IsAdmin returns true if the signed-in user is an administrator.
	IsAdmin() bool

	// ResponseWriter returns the underlying ResponseWriter for advanced usage.
	ResponseWriter() *ResponseWriter
}

// requestContext implements the Context interface.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager
	sessionManager *SessionManager
	toastRenderer  ToastRenderer
	scope          *scope
}

// newContext creates a new context with the response wrapper.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw := NewResponseWriter(w, htmx.IsHTMX(r))

	s := scopeFrom(r.Context())
	if s == nil {
		s = &scope{toasts: &toast.Queue{}}
		r = r.WithContext(toast.WithQueue(context.WithValue(r.Context(), scopeKey{}, s), s.toasts))
	}

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		cookieManager:  app.cookieManager,
		sessionManager: app.sessionManager,
		toastRenderer:  app.toastRenderer,
		scope:          s,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) FormValues() (url.Values, error) {
	if err := c.request.ParseForm(); err != nil {
		return nil, ErrBadRequest("Malformed form data", WithError(err))
	}
	return c.request.Form, nil
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	if pending := c.scope.toasts.Drain(); len(pending) > 0 {
		if err := c.cookieManager.SetFlash(c.response, toastFlashKey, pending); err != nil {
			c.LogWarn("toasts dropped on redirect", "error", err)
		}
	}
	if htmx.IsHTMX(c.request) {
		htmx.Redirect(c.response, c.request, url)
		return nil
	}
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

// Render renders a component with the given status code.
// For htmx requests: the ResponseWriter transforms non-200 to 200.
// For regular requests: uses the provided status code.
func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")

	isHTMX := htmx.IsHTMX(c.request)
	var cfg *htmx.Config
	if len(opts) > 0 {
		cfg = htmx.NewConfig(opts...)
	}
	if isHTMX {
		cfg.ApplyHeaders(c.response)
	}

	c.response.WriteHeader(code)

	ctx := c.request.Context()
	if err := component.Render(ctx, c.response); err != nil {
		return err
	}
	if !isHTMX {
		return nil
	}
	if err := cfg.RenderOOB(ctx, c.response); err != nil {
		return err
	}
	if c.toastRenderer != nil && c.scope.toasts.Len() > 0 {
		return c.toastRenderer(c.scope.toasts.Drain()).Render(ctx, c.response)
	}
	return nil
}

// RenderPartial renders different components based on request type.
// Render options are only applied for htmx requests.
func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if htmx.IsHTMX(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.cookieManager.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.cookieManager.SetSigned(c.response, name, value, maxAge)
}

func (c *requestContext) Flash(key string, dest any) error {
	return c.cookieManager.Flash(c.response, c.request, key, dest)
}

func (c *requestContext) SetFlash(key string, value any) error {
	return c.cookieManager.SetFlash(c.response, key, value)
}

func (c *requestContext) Toasts() *toast.Queue {
	return c.scope.toasts
}

// registerSessionHook persists a dirty session right before the response is written.
func (c *requestContext) registerSessionHook() {
	if c.scope.hooked {
		return
	}
	c.scope.hooked = true
	c.responseWriter.OnBeforeWrite(func() {
		sess := c.scope.session
		if sess == nil || !sess.IsDirty() {
			return
		}
		// Best-effort: a failed save must not break rendering.
		if err := c.sessionManager.Save(c.Context(), c.response, sess); err != nil {
			c.LogError("failed to save session", "error", err)
		}
	})
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}
	if c.scope.loaded {
		return c.scope.session, nil
	}

	sess, err := c.sessionManager.Load(c.Context(), c.request)
	if err != nil {
		return nil, err
	}
	c.scope.session = sess
	c.scope.loaded = true
	if sess != nil {
		c.registerSessionHook()
	}
	return sess, nil
}

func (c *requestContext) SignIn(token, userID, name string, admin bool) error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}
	current, err := c.Session()
	if err != nil {
		c.LogWarn("failed to load session", "error", err)
	}

	sess := c.sessionManager.Rotate(c.Context(), current)
	sess.SignIn(token, userID, name, admin)
	c.scope.session = sess
	c.scope.loaded = true
	c.registerSessionHook()
	return nil
}

func (c *requestContext) SignOut() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}
	sess, _ := c.Session()
	c.scope.session = nil
	c.scope.loaded = true
	return c.sessionManager.Destroy(c.Context(), c.response, sess)
}

func (c *requestContext) current() *session.Session {
	sess, err := c.Session()
	if err != nil {
		return nil
	}
	return sess
}

func (c *requestContext) Token() string {
	return c.current().Token()
}

func (c *requestContext) UserID() string {
	return c.current().Get(session.KeyUserID)
}

func (c *requestContext) UserName() string {
	return c.current().Get(session.KeyUserName)
}

func (c *requestContext) IsAuthenticated() bool {
	return c.current().IsAuthenticated()
}

func (c *requestContext) IsAdmin() bool {
	return c.current().IsAdmin()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}
