package htmx_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/pkg/htmx"
)

func htmxRequest(boosted bool) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(htmx.HeaderHXRequest, "true")
	if boosted {
		r.Header.Set(htmx.HeaderHXBoosted, "true")
	}
	return r
}

func TestRequestHelpers(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, htmx.IsHTMX(plain))
	assert.False(t, htmx.IsPartial(plain))

	partial := htmxRequest(false)
	partial.Header.Set(htmx.HeaderHXTarget, "admin-outlet")
	partial.Header.Set(htmx.HeaderHXTriggerName, "email")
	partial.Header.Set(htmx.HeaderHXCurrentURL, "http://localhost/auth/register")
	assert.True(t, htmx.IsPartial(partial))
	assert.Equal(t, "admin-outlet", htmx.Target(partial))
	assert.Equal(t, "email", htmx.TriggerName(partial))
	assert.Equal(t, "http://localhost/auth/register", htmx.CurrentURL(partial))

	boosted := htmxRequest(true)
	assert.True(t, htmx.IsBoosted(boosted))
	assert.False(t, htmx.IsPartial(boosted))
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("htmx", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		htmx.Redirect(w, htmxRequest(false), "/auth/login")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/auth/login", w.Header().Get(htmx.HeaderHXRedirect))
	})

	t.Run("regular", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		htmx.Redirect(w, httptest.NewRequest(http.MethodPost, "/", nil), "/auth/login")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	})

	t.Run("location", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		htmx.Location(w, htmxRequest(false), "/blog")
		assert.Equal(t, "/blog", w.Header().Get(htmx.HeaderHXLocation))

		w = httptest.NewRecorder()
		htmx.Location(w, httptest.NewRequest(http.MethodGet, "/", nil), "/blog")
		assert.Equal(t, http.StatusFound, w.Code)
	})
}

type fragment string

func (f fragment) Render(_ context.Context, w io.Writer) error {
	if f == "fail" {
		return errors.New("render failed")
	}
	_, err := io.WriteString(w, string(f))
	return err
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := htmx.NewConfig(
		htmx.WithOOB(fragment("<div id=\"toasts\" hx-swap-oob=\"true\"></div>"), nil),
		htmx.WithRetarget("#main"),
		htmx.WithReswap(htmx.SwapOuterHTML),
		htmx.WithPushURL("/blog?page=2"),
		htmx.WithTrigger("saved", "closeModal"),
		htmx.WithRefresh(),
	)

	w := httptest.NewRecorder()
	cfg.ApplyHeaders(w)
	assert.Equal(t, "#main", w.Header().Get(htmx.HeaderHXRetarget))
	assert.Equal(t, "outerHTML", w.Header().Get(htmx.HeaderHXReswap))
	assert.Equal(t, "/blog?page=2", w.Header().Get(htmx.HeaderHXPushURL))
	assert.Equal(t, "saved, closeModal", w.Header().Get(htmx.HeaderHXTrigger))
	assert.Equal(t, "true", w.Header().Get(htmx.HeaderHXRefresh))

	var buf bytes.Buffer
	require.NoError(t, cfg.RenderOOB(context.Background(), &buf))
	assert.Contains(t, buf.String(), `hx-swap-oob="true"`)

	bad := htmx.NewConfig(htmx.WithOOB(fragment("fail")))
	require.Error(t, bad.RenderOOB(context.Background(), &buf))

	var nilCfg *htmx.Config
	assert.NotPanics(t, func() { nilCfg.ApplyHeaders(httptest.NewRecorder()) })
	require.NoError(t, nilCfg.RenderOOB(context.Background(), &buf))
}
