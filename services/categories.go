package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/blogfront/pkg/apiclient"
)

// Categories wraps the post category endpoints.
type Categories struct {
	c *apiclient.Client
}

// List returns a page of categories.
func (s *Categories) List(ctx context.Context, p ListParams) (apiclient.Page[Category], error) {
	return apiclient.Call[apiclient.Page[Category]](ctx, s.c, apiclient.Request{
		Op:    "categories.list",
		Path:  "/api/post-categories",
		Query: p.query(),
	})
}

// Get returns a single category.
func (s *Categories) Get(ctx context.Context, id string) (Category, error) {
	return apiclient.Call[Category](ctx, s.c, apiclient.Request{
		Op:   "categories.get",
		Path: "/api/post-categories/" + url.PathEscape(id),
	})
}

// Create stores a new category.
func (s *Categories) Create(ctx context.Context, title string) (Category, error) {
	return apiclient.Call[Category](ctx, s.c, apiclient.Request{
		Op:     "categories.create",
		Method: http.MethodPost,
		Path:   "/api/post-categories",
		Body:   map[string]string{"title": title},
	})
}

// Update renames a category.
func (s *Categories) Update(ctx context.Context, id, title string) (Category, error) {
	return apiclient.Call[Category](ctx, s.c, apiclient.Request{
		Op:     "categories.update",
		Method: http.MethodPut,
		Path:   "/api/post-categories/" + url.PathEscape(id),
		Body:   map[string]string{"title": title},
	})
}

// Delete removes a category.
func (s *Categories) Delete(ctx context.Context, id string) (apiclient.Result, error) {
	return deleteResource(ctx, s.c, "categories.delete", "/api/post-categories/"+url.PathEscape(id))
}
