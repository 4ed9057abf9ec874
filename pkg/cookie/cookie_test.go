package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	m, err := cookie.New(append([]cookie.Option{cookie.WithSecret(testSecret)}, opts...)...)
	require.NoError(t, err)
	return m
}

// roundTrip copies cookies written to w onto a new request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("short secret rejected", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New(cookie.WithSecret("short"))
		require.ErrorIs(t, err, cookie.ErrBadSecret)
	})

	t.Run("no secret disables sealed cookies", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New()
		require.NoError(t, err)
		require.ErrorIs(t, m.SetSigned(httptest.NewRecorder(), "a", "b", 0), cookie.ErrNoSecret)
		require.ErrorIs(t, m.SetEncrypted(httptest.NewRecorder(), "a", "b", 0), cookie.ErrNoSecret)
	})
}

func TestPlain(t *testing.T) {
	t.Parallel()

	m := newManager(t, cookie.WithSecure(true), cookie.WithDomain("example.com"), cookie.WithSameSite(http.SameSiteStrictMode))

	_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing")
	require.ErrorIs(t, err, cookie.ErrNotFound)

	w := httptest.NewRecorder()
	m.Set(w, "name", "value", 3600)
	c := w.Result().Cookies()[0]
	assert.Equal(t, "value", c.Value)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	w = httptest.NewRecorder()
	m.Delete(w, "name")
	assert.Negative(t, w.Result().Cookies()[0].MaxAge)
}

func TestSigned(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "__sid", "session-id", 60))

	got, err := m.GetSigned(roundTrip(w), "__sid")
	require.NoError(t, err)
	assert.Equal(t, "session-id", got)

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		raw := w.Result().Cookies()[0].Value
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "__sid", Value: "b3RoZXI." + strings.SplitN(raw, ".", 2)[1]})
		_, err := m.GetSigned(r, "__sid")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("bound to name", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "other", Value: w.Result().Cookies()[0].Value})
		_, err := m.GetSigned(r, "other")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("other secret", func(t *testing.T) {
		t.Parallel()
		other, err := cookie.New(cookie.WithSecret(strings.Repeat("x", 32)))
		require.NoError(t, err)
		_, err = other.GetSigned(roundTrip(w), "__sid")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})
}

func TestEncrypted(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "secret", "hidden value", 0))

	raw := w.Result().Cookies()[0].Value
	assert.NotContains(t, raw, "hidden")

	got, err := m.GetEncrypted(roundTrip(w), "secret")
	require.NoError(t, err)
	assert.Equal(t, "hidden value", got)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "renamed", Value: raw})
	_, err = m.GetEncrypted(r, "renamed")
	require.ErrorIs(t, err, cookie.ErrDecrypt)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "secret", Value: "!!"})
	_, err = m.GetEncrypted(r, "secret")
	require.ErrorIs(t, err, cookie.ErrDecrypt)
}

func TestFlash(t *testing.T) {
	t.Parallel()

	type msg struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}

	m := newManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(w, "toasts", []msg{{Kind: "success", Text: "Registered"}}))
	assert.Equal(t, cookie.FlashPrefix+"toasts", w.Result().Cookies()[0].Name)

	read := httptest.NewRecorder()
	var got []msg
	require.NoError(t, m.Flash(read, roundTrip(w), "toasts", &got))
	assert.Equal(t, []msg{{Kind: "success", Text: "Registered"}}, got)

	deleted := read.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Negative(t, deleted[0].MaxAge)

	err := m.Flash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "toasts", &got)
	require.ErrorIs(t, err, cookie.ErrNotFound)
}
