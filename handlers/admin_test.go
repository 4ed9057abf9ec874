package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/views"
)

func adminBackend(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := usersBackend(t, true)
	mux.HandleFunc("PUT /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var flags map[string]bool
		_ = json.NewDecoder(r.Body).Decode(&flags)
		writeJSON(w, http.StatusOK, map[string]any{
			"_id": r.PathValue("id"), "name": "Bob", "email": "bob@example.com",
			"verified": flags["verified"], "admin": flags["admin"],
		})
	})
	mux.HandleFunc("DELETE /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "u1" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"code": 400, "message": "You cannot delete yourself"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"code": 200, "message": "User deleted"})
	})
	mux.HandleFunc("POST /api/post-categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"_id": "c9", "title": "New"})
	})
	return mux
}

func TestAdminActions(t *testing.T) {
	t.Parallel()

	app := newApp(t, newBackend(t, adminBackend(t)).URL)
	cookies := signIn(t, app)

	t.Run("flag toggle swaps the row", func(t *testing.T) {
		t.Parallel()

		w := do(app, request{method: http.MethodPost, path: views.AdminUsersPath + "/u2/admin?value=true", htmx: true, cookies: cookies})
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `<tr id="user-row-u2">`)
		assert.Contains(t, body, `/auth/admin/users/manage/u2/admin?value=false`)
		assert.Contains(t, body, `class="toast toast-success"`)
	})

	t.Run("invalid flag value is rejected", func(t *testing.T) {
		t.Parallel()

		w := do(app, request{method: http.MethodPost, path: views.AdminUsersPath + "/u2/verified?value=maybe", cookies: cookies})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		t.Parallel()

		w := do(app, request{method: http.MethodPost, path: views.AdminUsersPath + "/u2/delete", htmx: true, cookies: cookies})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("HX-Reswap"))
		assert.NotContains(t, w.Body.String(), "<tr")
		assert.Contains(t, w.Body.String(), "User deleted.")
	})

	t.Run("rejected delete keeps the row", func(t *testing.T) {
		t.Parallel()

		w := do(app, request{method: http.MethodPost, path: views.AdminUsersPath + "/u1/delete", htmx: true, cookies: cookies})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "none", w.Header().Get("HX-Reswap"))
		assert.Contains(t, w.Body.String(), `class="toast toast-error"`)
		assert.Contains(t, w.Body.String(), "You cannot delete yourself")
	})

	t.Run("category form errors are re-rendered", func(t *testing.T) {
		t.Parallel()

		w := do(app, request{method: http.MethodPost, path: views.AdminCategoriesPath, form: url.Values{forms.Title: {""}}, htmx: true, cookies: cookies})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Category title is required")
	})

	t.Run("category is created", func(t *testing.T) {
		t.Parallel()

		w := do(app, request{method: http.MethodPost, path: views.AdminCategoriesPath, form: url.Values{forms.Title: {"New"}}, cookies: cookies})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, views.AdminCategoriesPath, w.Header().Get("Location"))
	})
}
