package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/blogfront/pkg/apiclient"
)

// Users wraps the account endpoints.
type Users struct {
	c *apiclient.Client
}

// SignupParams is the registration payload. The confirmation is never sent.
type SignupParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account. The result code decides the outcome; 201 means accepted.
func (s *Users) Signup(ctx context.Context, p SignupParams) (apiclient.Result, error) {
	return s.c.Do(ctx, apiclient.Request{
		Op:     "users.register",
		Method: http.MethodPost,
		Path:   "/api/users/register",
		Body:   p,
	}, nil)
}

// LoginParams holds credentials.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token.
func (s *Users) Login(ctx context.Context, p LoginParams) (Identity, error) {
	return apiclient.Call[Identity](ctx, s.c, apiclient.Request{
		Op:     "users.login",
		Method: http.MethodPost,
		Path:   "/api/users/login",
		Body:   p,
	})
}

// ForgotPassword asks the backend to send a reset link.
func (s *Users) ForgotPassword(ctx context.Context, email string) (apiclient.Result, error) {
	return s.c.Do(ctx, apiclient.Request{
		Op:     "users.forgot_password",
		Method: http.MethodPost,
		Path:   "/api/users/forgot-password",
		Body:   map[string]string{"email": email},
	}, nil)
}

// Profile returns the user owning the context token.
func (s *Users) Profile(ctx context.Context) (User, error) {
	return apiclient.Call[User](ctx, s.c, apiclient.Request{
		Op:   "users.profile",
		Path: "/api/users/profile",
	})
}

// ProfileParams updates the current user. Empty password keeps the old one.
type ProfileParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// UpdateProfile updates the current user and returns the stored version.
func (s *Users) UpdateProfile(ctx context.Context, p ProfileParams) (User, error) {
	return apiclient.Call[User](ctx, s.c, apiclient.Request{
		Op:     "users.update_profile",
		Method: http.MethodPut,
		Path:   "/api/users/profile",
		Body:   p,
	})
}

// List returns a page of users. Admin only.
func (s *Users) List(ctx context.Context, p ListParams) (apiclient.Page[User], error) {
	return apiclient.Call[apiclient.Page[User]](ctx, s.c, apiclient.Request{
		Op:    "users.list",
		Path:  "/api/users",
		Query: p.query(),
	})
}

// UserFlags changes account flags. Nil fields are left untouched.
type UserFlags struct {
	Verified *bool `json:"verified,omitempty"`
	Admin    *bool `json:"admin,omitempty"`
}

// Update changes flags of another account. Admin only.
func (s *Users) Update(ctx context.Context, id string, f UserFlags) (User, error) {
	return apiclient.Call[User](ctx, s.c, apiclient.Request{
		Op:     "users.update",
		Method: http.MethodPut,
		Path:   "/api/users/" + url.PathEscape(id),
		Body:   f,
	})
}

// Delete removes an account. Admin only.
func (s *Users) Delete(ctx context.Context, id string) (apiclient.Result, error) {
	return deleteResource(ctx, s.c, "users.delete", "/api/users/"+url.PathEscape(id))
}

func deleteResource(ctx context.Context, c *apiclient.Client, op, path string) (apiclient.Result, error) {
	res, err := c.Do(ctx, apiclient.Request{Op: op, Method: http.MethodDelete, Path: path}, nil)
	if err != nil {
		return res, err
	}
	return res, res.Err()
}
