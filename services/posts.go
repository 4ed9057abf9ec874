package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/blogfront/pkg/apiclient"
)

// Posts wraps the article endpoints.
type Posts struct {
	c *apiclient.Client
}

// PostParams is the create/update payload. Categories holds category IDs.
type PostParams struct {
	Title      string   `json:"title"`
	Caption    string   `json:"caption"`
	Slug       string   `json:"slug,omitempty"`
	Body       string   `json:"body"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

// List returns a page of posts.
func (s *Posts) List(ctx context.Context, p ListParams) (apiclient.Page[Post], error) {
	return apiclient.Call[apiclient.Page[Post]](ctx, s.c, apiclient.Request{
		Op:    "posts.list",
		Path:  "/api/posts",
		Query: p.query(),
	})
}

// Get returns a post with its comments.
func (s *Posts) Get(ctx context.Context, slug string) (Post, error) {
	return apiclient.Call[Post](ctx, s.c, apiclient.Request{
		Op:   "posts.get",
		Path: "/api/posts/" + url.PathEscape(slug),
	})
}

// Create stores a new post.
func (s *Posts) Create(ctx context.Context, p PostParams) (Post, error) {
	return apiclient.Call[Post](ctx, s.c, apiclient.Request{
		Op:     "posts.create",
		Method: http.MethodPost,
		Path:   "/api/posts",
		Body:   p,
	})
}

// Update replaces a post identified by slug.
func (s *Posts) Update(ctx context.Context, slug string, p PostParams) (Post, error) {
	return apiclient.Call[Post](ctx, s.c, apiclient.Request{
		Op:     "posts.update",
		Method: http.MethodPut,
		Path:   "/api/posts/" + url.PathEscape(slug),
		Body:   p,
	})
}

// Delete removes a post.
func (s *Posts) Delete(ctx context.Context, slug string) (apiclient.Result, error) {
	return deleteResource(ctx, s.c, "posts.delete", "/api/posts/"+url.PathEscape(slug))
}
