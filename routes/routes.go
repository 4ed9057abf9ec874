// Package routes holds the static route table of the front end and registers it on the router.
package routes

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/views"
)

// Page identifiers.
const (
	PageHome              = "home"
	PageBlog              = "blog"
	PageArticle           = "article"
	PageRegister          = "register"
	PageLogin             = "login"
	PageForgotPassword    = "forgot-password"
	PageProfile           = "profile"
	PageAdminDashboard    = "admin.dashboard"
	PageAdminComments     = "admin.comments"
	PageAdminNewPost      = "admin.posts.new"
	PageAdminPosts        = "admin.posts"
	PageAdminEditPost     = "admin.posts.edit"
	PageAdminCategories   = "admin.categories"
	PageAdminEditCategory = "admin.categories.edit"
	PageAdminUsers        = "admin.users"
	PageNotFound          = "not-found"
)

// CatchAll is the pattern of the not-found route.
const CatchAll = "*"

// Route maps a path pattern to a page. Children are nested under Pattern and
// inherit its layout and guards; a child pattern of "/" is the index.
type Route struct {
	Layout   views.LayoutFunc
	Shell    views.ShellFunc
	Pattern  string
	Page     string
	Title    string
	Guards   []internal.Middleware
	Children []Route
}

// Table returns the route table. Each call builds a fresh copy.
func Table() []Route {
	return []Route{
		{Pattern: "/", Page: PageHome, Title: "Home"},
		{Pattern: "/blog", Page: PageBlog, Title: "Articles"},
		{Pattern: "/blog/{id}", Page: PageArticle, Title: "Article"},
		{Pattern: "/auth/register", Page: PageRegister, Title: "Register"},
		{Pattern: "/auth/login", Page: PageLogin, Title: "Sign in"},
		{Pattern: "/auth/forgot-password", Page: PageForgotPassword, Title: "Forgot password"},
		{
			Pattern: "/auth/profile", Page: PageProfile, Title: "Profile",
			Guards: []internal.Middleware{middlewares.RequireAuth(views.LoginPath)},
		},
		{
			Pattern: "/auth/admin",
			Layout:  views.AdminLayout,
			Shell:   views.AdminShell,
			Guards:  []internal.Middleware{middlewares.RequireAdmin("/")},
			Children: []Route{
				{Pattern: "/", Page: PageAdminDashboard, Title: "Dashboard"},
				{Pattern: "/comments", Page: PageAdminComments, Title: "Comments"},
				{Pattern: "/posts/new", Page: PageAdminNewPost, Title: "New post"},
				{Pattern: "/posts/manage", Page: PageAdminPosts, Title: "Posts"},
				{Pattern: "/posts/manage/edit/{slug}", Page: PageAdminEditPost, Title: "Edit post"},
				{Pattern: "/categories/manage", Page: PageAdminCategories, Title: "Categories"},
				{Pattern: "/categories/manage/edit/{categoryId}", Page: PageAdminEditCategory, Title: "Edit category"},
				{Pattern: "/users/manage", Page: PageAdminUsers, Title: "Users"},
			},
		},
		{Pattern: CatchAll, Page: PageNotFound, Title: "Not found"},
	}
}

// Resolved is a table entry with its full pattern and inherited settings.
type Resolved struct {
	Meta    views.Meta
	Pattern string
	Page    string
	Guards  []internal.Middleware
}

// Flatten expands nested routes into full patterns, parents first.
func Flatten(table []Route) []Resolved {
	var out []Resolved
	var walk func(prefix string, parent views.Meta, guards []internal.Middleware, rs []Route)
	walk = func(prefix string, parent views.Meta, guards []internal.Middleware, rs []Route) {
		for _, r := range rs {
			pattern := join(prefix, r.Pattern)
			m := views.Meta{Title: r.Title, Layout: parent.Layout, Shell: parent.Shell}
			if r.Layout != nil {
				m.Layout, m.Shell = r.Layout, r.Shell
			}
			g := append(append([]internal.Middleware(nil), guards...), r.Guards...)
			if r.Page != "" {
				out = append(out, Resolved{
					Pattern: pattern,
					Page:    r.Page,
					Guards:  g,
					Meta:    m,
				})
			}
			walk(pattern, m, g, r.Children)
		}
	}
	walk("", views.Meta{}, nil, table)
	return out
}

func join(prefix, pattern string) string {
	if prefix == "" {
		return pattern
	}
	if pattern == "/" || pattern == "" {
		return prefix
	}
	return strings.TrimSuffix(prefix, "/") + pattern
}

// WithMeta stores page metadata for the handler's renderer.
func WithMeta(meta views.Meta) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(views.MetaKey{}, meta)
			return next(c)
		}
	}
}

// Pages maps page identifiers to their GET handlers.
type Pages map[string]internal.HandlerFunc

// Handler registers the route table. It implements internal.Handler.
type Handler struct {
	pages    Pages
	notFound internal.HandlerFunc
	routes   []Resolved
}

// New binds pages to the route table. It panics when a table page has no handler,
// so a missing page fails at startup rather than on first request.
func New(pages Pages) *Handler {
	h := &Handler{pages: pages}
	for _, r := range Flatten(Table()) {
		fn, ok := pages[r.Page]
		if !ok {
			panic(fmt.Sprintf("routes: no handler for page %q (%s)", r.Page, r.Pattern))
		}
		if r.Pattern == CatchAll {
			h.notFound = WithMeta(r.Meta)(fn)
			continue
		}
		h.routes = append(h.routes, r)
	}
	return h
}

// Routes registers every GET page with its guards and metadata.
func (h *Handler) Routes(r internal.Router) {
	for _, rt := range h.routes {
		mw := append(append([]internal.Middleware(nil), rt.Guards...), WithMeta(rt.Meta))
		r.GET(rt.Pattern, h.pages[rt.Page], mw...)
	}
}

// NotFound returns the catch-all handler for WithNotFoundHandler.
func (h *Handler) NotFound() internal.HandlerFunc {
	return h.notFound
}
