package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/blogfront/pkg/apiclient"
)

// Comments wraps the comment endpoints.
type Comments struct {
	c *apiclient.Client
}

// CommentParams creates a comment or a reply when Parent is set.
type CommentParams struct {
	Desc        string `json:"desc"`
	Slug        string `json:"slug"`
	Parent      string `json:"parent,omitempty"`
	ReplyOnUser string `json:"replyOnUser,omitempty"`
}

// CommentUpdate edits text or moderation state. Nil fields are left untouched.
type CommentUpdate struct {
	Desc  *string `json:"desc,omitempty"`
	Check *bool   `json:"check,omitempty"`
}

// List returns a page of comments across all posts. Admin only.
func (s *Comments) List(ctx context.Context, p ListParams) (apiclient.Page[Comment], error) {
	return apiclient.Call[apiclient.Page[Comment]](ctx, s.c, apiclient.Request{
		Op:    "comments.list",
		Path:  "/api/comments",
		Query: p.query(),
	})
}

// Create posts a comment.
func (s *Comments) Create(ctx context.Context, p CommentParams) (Comment, error) {
	return apiclient.Call[Comment](ctx, s.c, apiclient.Request{
		Op:     "comments.create",
		Method: http.MethodPost,
		Path:   "/api/comments",
		Body:   p,
	})
}

// Update edits a comment.
func (s *Comments) Update(ctx context.Context, id string, u CommentUpdate) (Comment, error) {
	return apiclient.Call[Comment](ctx, s.c, apiclient.Request{
		Op:     "comments.update",
		Method: http.MethodPut,
		Path:   "/api/comments/" + url.PathEscape(id),
		Body:   u,
	})
}

// Delete removes a comment.
func (s *Comments) Delete(ctx context.Context, id string) (apiclient.Result, error) {
	return deleteResource(ctx, s.c, "comments.delete", "/api/comments/"+url.PathEscape(id))
}
