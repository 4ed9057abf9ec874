// Package session holds per-visitor server-side state.
//
// A session stores the backend bearer token and a summary of the signed-in user.
// The browser only sees the signed session ID cookie.
package session

import "time"

// Well-known value keys.
const (
	KeyToken    = "token"
	KeyUserID   = "user_id"
	KeyUserName = "user_name"
	KeyAdmin    = "admin"
)

// Session is a visitor session.
type Session struct {
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
	Values    map[string]string `json:"values"`
	ID        string            `json:"id"`

	dirty bool
	isNew bool
}

// New creates an unsaved session.
func New(id string, expiresAt time.Time) *Session {
	return &Session{
		ID:        id,
		Values:    make(map[string]string),
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		isNew:     true,
		dirty:     true,
	}
}

// Get returns a value or "".
func (s *Session) Get(key string) string {
	if s == nil {
		return ""
	}
	return s.Values[key]
}

// Set stores a value and marks the session dirty.
func (s *Session) Set(key, val string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	if s.Values[key] == val {
		return
	}
	s.Values[key] = val
	s.dirty = true
}

// Delete removes a value.
func (s *Session) Delete(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

// SignIn records the authenticated user.
func (s *Session) SignIn(token, userID, name string, admin bool) {
	s.Set(KeyToken, token)
	s.Set(KeyUserID, userID)
	s.Set(KeyUserName, name)
	if admin {
		s.Set(KeyAdmin, "1")
	} else {
		s.Delete(KeyAdmin)
	}
}

// SignOut drops all user data.
func (s *Session) SignOut() {
	for _, k := range []string{KeyToken, KeyUserID, KeyUserName, KeyAdmin} {
		s.Delete(k)
	}
}

// Token returns the backend bearer token.
func (s *Session) Token() string {
	return s.Get(KeyToken)
}

// IsAuthenticated reports whether a backend token is stored.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the signed-in user is an administrator.
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Get(KeyAdmin) == "1"
}

// IsDirty reports unsaved changes.
func (s *Session) IsDirty() bool { return s.dirty }

// IsNew reports whether the session was never persisted.
func (s *Session) IsNew() bool { return s.isNew }

// MarkSaved clears the dirty and new flags.
func (s *Session) MarkSaved() {
	s.dirty = false
	s.isNew = false
}

// IsExpired reports whether the session is past ExpiresAt.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
