package services_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/services"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

type backend struct {
	mu    sync.Mutex
	calls []recorded
	reply string
}

func newBackend(t *testing.T, reply string) (*backend, *services.Services) {
	t.Helper()
	b := &backend{reply: reply}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.calls = append(b.calls, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(body),
		})
		b.mu.Unlock()
		_, _ = w.Write([]byte(b.reply))
	}))
	t.Cleanup(ts.Close)

	c, err := apiclient.New(apiclient.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	return b, services.New(c)
}

func (b *backend) last(t *testing.T) recorded {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.calls)
	return b.calls[len(b.calls)-1]
}

func TestUsers_SignupSendsOnlyCredentials(t *testing.T) {
	t.Parallel()

	b, svc := newBackend(t, `{"code":201,"message":"Registered"}`)
	res, err := svc.Users.Signup(context.Background(), services.SignupParams{
		Username: "john",
		Email:    "john@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.True(t, res.Created())
	assert.Equal(t, "Registered", res.Message)

	call := b.last(t)
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/api/users/register", call.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(call.body), &body))
	assert.Equal(t, map[string]any{"username": "john", "email": "john@example.com", "password": "secret1"}, body)
}

func TestUsers_Login(t *testing.T) {
	t.Parallel()

	_, svc := newBackend(t, `{"code":200,"message":"ok","data":{"token":"t1","user":{"_id":"u1","name":"John","admin":true}}}`)
	id, err := svc.Users.Login(context.Background(), services.LoginParams{Email: "a@b.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "t1", id.Token)
	assert.Equal(t, "u1", id.User.ID)
	assert.True(t, id.User.Admin)
}

func TestUsers_LoginRejected(t *testing.T) {
	t.Parallel()

	_, svc := newBackend(t, `{"code":401,"message":"Invalid email or password"}`)
	_, err := svc.Users.Login(context.Background(), services.LoginParams{Email: "a@b.io", Password: "bad"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.True(t, apiclient.IsUnauthorized(err))
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	yes := true
	tests := []struct {
		name   string
		call   func(ctx context.Context, s *services.Services) error
		method string
		path   string
		query  string
	}{
		{"forgot password", func(ctx context.Context, s *services.Services) error {
			_, err := s.Users.ForgotPassword(ctx, "a@b.io")
			return err
		}, http.MethodPost, "/api/users/forgot-password", ""},
		{"profile", func(ctx context.Context, s *services.Services) error {
			_, err := s.Users.Profile(ctx)
			return err
		}, http.MethodGet, "/api/users/profile", ""},
		{"update profile", func(ctx context.Context, s *services.Services) error {
			_, err := s.Users.UpdateProfile(ctx, services.ProfileParams{Name: "J"})
			return err
		}, http.MethodPut, "/api/users/profile", ""},
		{"list users", func(ctx context.Context, s *services.Services) error {
			_, err := s.Users.List(ctx, services.ListParams{Search: "jo", Page: 2, Limit: 10})
			return err
		}, http.MethodGet, "/api/users", "limit=10&page=2&searchKeyword=jo"},
		{"update user", func(ctx context.Context, s *services.Services) error {
			_, err := s.Users.Update(ctx, "u1", services.UserFlags{Admin: &yes})
			return err
		}, http.MethodPut, "/api/users/u1", ""},
		{"delete user", func(ctx context.Context, s *services.Services) error {
			_, err := s.Users.Delete(ctx, "u1")
			return err
		}, http.MethodDelete, "/api/users/u1", ""},
		{"list posts", func(ctx context.Context, s *services.Services) error {
			_, err := s.Posts.List(ctx, services.ListParams{})
			return err
		}, http.MethodGet, "/api/posts", ""},
		{"get post", func(ctx context.Context, s *services.Services) error {
			_, err := s.Posts.Get(ctx, "hello-world")
			return err
		}, http.MethodGet, "/api/posts/hello-world", ""},
		{"create post", func(ctx context.Context, s *services.Services) error {
			_, err := s.Posts.Create(ctx, services.PostParams{Title: "T"})
			return err
		}, http.MethodPost, "/api/posts", ""},
		{"update post", func(ctx context.Context, s *services.Services) error {
			_, err := s.Posts.Update(ctx, "p", services.PostParams{Title: "T"})
			return err
		}, http.MethodPut, "/api/posts/p", ""},
		{"delete post", func(ctx context.Context, s *services.Services) error {
			_, err := s.Posts.Delete(ctx, "p")
			return err
		}, http.MethodDelete, "/api/posts/p", ""},
		{"list categories", func(ctx context.Context, s *services.Services) error {
			_, err := s.Categories.List(ctx, services.ListParams{Page: 1})
			return err
		}, http.MethodGet, "/api/post-categories", "page=1"},
		{"get category", func(ctx context.Context, s *services.Services) error {
			_, err := s.Categories.Get(ctx, "c1")
			return err
		}, http.MethodGet, "/api/post-categories/c1", ""},
		{"create category", func(ctx context.Context, s *services.Services) error {
			_, err := s.Categories.Create(ctx, "Go")
			return err
		}, http.MethodPost, "/api/post-categories", ""},
		{"update category", func(ctx context.Context, s *services.Services) error {
			_, err := s.Categories.Update(ctx, "c1", "Go")
			return err
		}, http.MethodPut, "/api/post-categories/c1", ""},
		{"delete category", func(ctx context.Context, s *services.Services) error {
			_, err := s.Categories.Delete(ctx, "c1")
			return err
		}, http.MethodDelete, "/api/post-categories/c1", ""},
		{"list comments", func(ctx context.Context, s *services.Services) error {
			_, err := s.Comments.List(ctx, services.ListParams{})
			return err
		}, http.MethodGet, "/api/comments", ""},
		{"create comment", func(ctx context.Context, s *services.Services) error {
			_, err := s.Comments.Create(ctx, services.CommentParams{Desc: "hi", Slug: "p"})
			return err
		}, http.MethodPost, "/api/comments", ""},
		{"update comment", func(ctx context.Context, s *services.Services) error {
			_, err := s.Comments.Update(ctx, "m1", services.CommentUpdate{Check: &yes})
			return err
		}, http.MethodPut, "/api/comments/m1", ""},
		{"delete comment", func(ctx context.Context, s *services.Services) error {
			_, err := s.Comments.Delete(ctx, "m1")
			return err
		}, http.MethodDelete, "/api/comments/m1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, svc := newBackend(t, `{"code":200,"message":"ok"}`)
			ctx := apiclient.WithToken(context.Background(), "tok")

			require.NoError(t, tt.call(ctx, svc))
			call := b.last(t)
			assert.Equal(t, tt.method, call.method)
			assert.Equal(t, tt.path, call.path)
			assert.Equal(t, tt.query, call.query)
			assert.Equal(t, "Bearer tok", call.auth)
		})
	}
}

func TestDeleteFailureIsError(t *testing.T) {
	t.Parallel()

	_, svc := newBackend(t, `{"code":403,"message":"Not allowed"}`)
	_, err := svc.Posts.Delete(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, "Not allowed", err.Error())
}

func TestPostsList_DecodesPage(t *testing.T) {
	t.Parallel()

	_, svc := newBackend(t, `{"code":200,"data":{"items":[{"slug":"a","title":"A","tags":["go"]}],"total":1,"page":1,"pages":1}}`)
	page, err := svc.Posts.List(context.Background(), services.ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].Slug)
	assert.Equal(t, []string{"go"}, page.Items[0].Tags)
	assert.False(t, page.HasNext())
}
