package handlers

import (
	"context"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/pkg/form"
	"github.com/dmitrymomot/blogfront/pkg/markdown"
	"github.com/dmitrymomot/blogfront/pkg/query"
	"github.com/dmitrymomot/blogfront/pkg/sanitizer"
	"github.com/dmitrymomot/blogfront/pkg/toast"
	"github.com/dmitrymomot/blogfront/routes"
	"github.com/dmitrymomot/blogfront/services"
	"github.com/dmitrymomot/blogfront/views"
)

// Query cache namespaces of public reads.
const (
	NSPosts      = "posts"
	NSCategories = "categories"
)

// homeLimit is the number of latest posts on the home page.
const homeLimit = 6

// BlogHandler serves the public pages.
type BlogHandler struct {
	svc *services.Services
	q   *query.Client
}

// NewBlogHandler creates the handler.
func NewBlogHandler(svc *services.Services, q *query.Client) *BlogHandler {
	return &BlogHandler{svc: svc, q: q}
}

// Pages returns the GET pages served by this handler.
func (h *BlogHandler) Pages() routes.Pages {
	return routes.Pages{
		routes.PageHome:     h.home,
		routes.PageBlog:     h.list,
		routes.PageArticle:  h.article,
		routes.PageNotFound: h.notFound,
	}
}

// Routes registers the comment action.
func (h *BlogHandler) Routes(r internal.Router) {
	r.POST(views.BlogPath+"/{id}/comments", h.comment, middlewares.RequireAuth(views.LoginPath))
}

// LatestPosts loads the home page posts. It is also the scheduled refetch loader.
func (h *BlogHandler) LatestPosts(ctx context.Context) (apiclient.Page[services.Post], error) {
	return h.svc.Posts.List(ctx, services.ListParams{Page: 1, Limit: homeLimit})
}

// LatestPostsKey is the cache key of LatestPosts.
func LatestPostsKey() string {
	return query.Key("latest", homeLimit)
}

func (h *BlogHandler) home(c internal.Context) error {
	var (
		posts      apiclient.Page[services.Post]
		categories apiclient.Page[services.Category]
	)
	g, ctx := errgroup.WithContext(apiCtx(c))
	g.Go(func() error {
		var err error
		posts, err = query.Fetch(ctx, h.q, NSPosts, LatestPostsKey(), h.LatestPosts)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = query.Fetch(ctx, h.q, NSCategories, query.Key("all"),
			func(ctx context.Context) (apiclient.Page[services.Category], error) {
				return h.svc.Categories.List(ctx, services.ListParams{})
			})
		return err
	})
	if err := g.Wait(); err != nil {
		return backendError(c, err, "Articles")
	}
	return render(c, http.StatusOK, views.Home(posts.Items, categories.Items))
}

// pageParams reads ?q and ?page.
func pageParams(c internal.Context) services.ListParams {
	p := services.ListParams{Search: c.Query("q"), Page: 1, Limit: pageSize}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		p.Page = n
	}
	return p
}

func (h *BlogHandler) list(c internal.Context) error {
	p := pageParams(c)
	page, err := query.Fetch(apiCtx(c), h.q, NSPosts, query.Key("list", p.Search, p.Page, p.Limit),
		func(ctx context.Context) (apiclient.Page[services.Post], error) {
			return h.svc.Posts.List(ctx, p)
		})
	if err != nil {
		return backendError(c, err, "Articles")
	}
	return render(c, http.StatusOK, views.BlogList(page, p.Search))
}

func (h *BlogHandler) article(c internal.Context) error {
	return h.renderArticle(c, forms.NewComment())
}

func (h *BlogHandler) renderArticle(c internal.Context, f *form.Form) error {
	slug := c.Param("id")
	p, err := query.Fetch(apiCtx(c), h.q, NSPosts, query.Key("post", slug),
		func(ctx context.Context) (services.Post, error) {
			return h.svc.Posts.Get(ctx, slug)
		})
	if err != nil {
		return backendError(c, err, "Article")
	}
	body, err := markdown.Render(p.Body)
	if err != nil {
		c.LogWarn("failed to render article body", "slug", slug, "error", err)
		body = "<p>" + sanitizer.StripHTML(p.Body) + "</p>"
	}
	comments := views.Comments(p.Comments, f, p.Slug, c.IsAuthenticated())
	return render(c, http.StatusOK, views.Article(p, body, comments))
}

func (h *BlogHandler) comment(c internal.Context) error {
	slug := c.Param("id")
	f := forms.NewComment()
	if err := loadForm(c, f); err != nil {
		return err
	}
	err := f.Submit(func(v form.Values) error {
		_, err := h.svc.Comments.Create(apiCtx(c), services.CommentParams{
			Desc: v.Get(forms.Desc),
			Slug: slug,
		})
		return err
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !isInvalid(err) {
			status = http.StatusOK
			toast.Error(c.Context(), err.Error())
		}
		if c.IsHTMX() {
			return c.Render(status, views.CommentForm(f, slug))
		}
		return h.renderArticle(c, f)
	}

	invalidate(c, h.q, NSPosts)
	toast.Success(c.Context(), "Thanks! Your comment will appear once it is approved.")
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.CommentForm(forms.NewComment(), slug))
	}
	return seeOther(c, views.ArticlePath(slug))
}

func (h *BlogHandler) notFound(c internal.Context) error {
	return render(c, http.StatusNotFound, views.NotFound())
}
