package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/blogfront/pkg/logger"
	"github.com/dmitrymomot/blogfront/pkg/session"
)

// Default session configuration.
const (
	defaultSessionCookieName = "__sid"
	defaultSessionMaxAge     = 86400 * 7 // 7 days
)

// SessionManager handles session lifecycle and cookie management.
type SessionManager struct {
	store      session.Store
	logger     *slog.Logger
	cookieName string
	domain     string
	path       string
	maxAge     int
	sameSite   http.SameSite
	secure     bool
	httpOnly   bool
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a new SessionManager with the given store and options.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:      store,
		logger:     logger.Nope(),
		cookieName: defaultSessionCookieName,
		maxAge:     defaultSessionMaxAge,
		path:       "/",
		httpOnly:   true,
		sameSite:   http.SameSiteLaxMode,
	}

	for _, opt := range opts {
		opt(sm)
	}

	return sm
}

// WithSessionCookieName sets the session cookie name.
func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// WithSessionMaxAge sets the session max age in seconds.
func WithSessionMaxAge(seconds int) SessionOption {
	return func(sm *SessionManager) {
		if seconds > 0 {
			sm.maxAge = seconds
		}
	}
}

// WithSessionDomain sets the session cookie domain.
func WithSessionDomain(domain string) SessionOption {
	return func(sm *SessionManager) {
		sm.domain = domain
	}
}

// WithSessionSecure sets the session cookie Secure flag.
func WithSessionSecure(secure bool) SessionOption {
	return func(sm *SessionManager) {
		sm.secure = secure
	}
}

// WithSessionSameSite sets the session cookie SameSite attribute.
func WithSessionSameSite(sameSite http.SameSite) SessionOption {
	return func(sm *SessionManager) {
		sm.sameSite = sameSite
	}
}

// SetLogger sets the logger for session events. Called by App after initialization.
func (sm *SessionManager) SetLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

// Load returns the session referenced by the request cookie.
// Returns nil, nil when there is no cookie or the stored session is gone or expired.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*session.Session, error) {
	c, err := r.Cookie(sm.cookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	sess, err := sm.store.Get(ctx, c.Value)
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return nil, nil
	case errors.Is(err, session.ErrCorrupted):
		sm.logger.WarnContext(ctx, "dropping corrupted session", slog.Any("error", err))
		_ = sm.store.Delete(ctx, c.Value)
		return nil, nil
	case err != nil:
		return nil, err
	}
	return sess, nil
}

// Create returns a new unsaved session with a fresh random ID.
func (sm *SessionManager) Create() *session.Session {
	return session.New(uuid.NewString(), time.Now().Add(time.Duration(sm.maxAge)*time.Second))
}

// Rotate replaces the session ID, keeping its values. Called on sign-in to prevent fixation.
func (sm *SessionManager) Rotate(ctx context.Context, old *session.Session) *session.Session {
	fresh := sm.Create()
	if old == nil {
		return fresh
	}
	for k, v := range old.Values {
		fresh.Set(k, v)
	}
	if !old.IsNew() {
		if err := sm.store.Delete(ctx, old.ID); err != nil {
			sm.logger.WarnContext(ctx, "failed to delete rotated session", slog.Any("error", err))
		}
	}
	return fresh
}

// Save persists the session and writes its cookie.
func (sm *SessionManager) Save(ctx context.Context, w http.ResponseWriter, sess *session.Session) error {
	isNew := sess.IsNew()
	if err := sm.store.Save(ctx, sess); err != nil {
		return err
	}
	if isNew {
		http.SetCookie(w, sm.cookie(sess.ID, sm.maxAge))
	}
	return nil
}

// Destroy removes the session from the store and clears the cookie.
func (sm *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, sess *session.Session) error {
	http.SetCookie(w, sm.cookie("", -1))
	if sess == nil || sess.IsNew() {
		return nil
	}
	return sm.store.Delete(ctx, sess.ID)
}

// Store returns the underlying session store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

func (sm *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sm.cookieName,
		Value:    value,
		Path:     sm.path,
		Domain:   sm.domain,
		MaxAge:   maxAge,
		Secure:   sm.secure,
		HttpOnly: sm.httpOnly,
		SameSite: sm.sameSite,
	}
}
