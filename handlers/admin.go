package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/pkg/form"
	"github.com/dmitrymomot/blogfront/pkg/query"
	"github.com/dmitrymomot/blogfront/pkg/slug"
	"github.com/dmitrymomot/blogfront/pkg/toast"
	"github.com/dmitrymomot/blogfront/routes"
	"github.com/dmitrymomot/blogfront/services"
	"github.com/dmitrymomot/blogfront/views"
)

const maxSlugLen = 80

// AdminHandler serves the admin area.
type AdminHandler struct {
	svc *services.Services
	q   *query.Client
}

// NewAdminHandler creates the handler.
func NewAdminHandler(svc *services.Services, q *query.Client) *AdminHandler {
	return &AdminHandler{svc: svc, q: q}
}

// Pages returns the GET pages served by this handler.
func (h *AdminHandler) Pages() routes.Pages {
	return routes.Pages{
		routes.PageAdminDashboard:    h.dashboard,
		routes.PageAdminComments:     h.comments,
		routes.PageAdminNewPost:      h.newPost,
		routes.PageAdminPosts:        h.posts,
		routes.PageAdminEditPost:     h.editPost,
		routes.PageAdminCategories:   h.categories,
		routes.PageAdminEditCategory: h.editCategory,
		routes.PageAdminUsers:        h.users,
	}
}

// Routes registers the admin actions behind the admin guard.
func (h *AdminHandler) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(
			middlewares.RequireAdmin("/"),
			routes.WithMeta(views.Meta{Layout: views.AdminLayout, Shell: views.AdminShell, Title: "Admin"}),
		)

		r.POST(views.AdminNewPostPath, h.createPost)
		r.POST(views.AdminPostsPath+"/edit/{slug}", h.updatePost)
		r.POST(views.AdminPostsPath+"/{slug}/delete", h.deletePost)

		r.POST(views.AdminCategoriesPath, h.createCategory)
		r.POST(views.AdminCategoriesPath+"/edit/{categoryId}", h.updateCategory)
		r.POST(views.AdminCategoriesPath+"/{categoryId}/delete", h.deleteCategory)

		r.POST(views.AdminCommentsPath+"/{id}/check", h.checkComment)
		r.POST(views.AdminCommentsPath+"/{id}/delete", h.deleteComment)

		r.POST(views.AdminUsersPath+"/{id}/verified", h.setUserFlag)
		r.POST(views.AdminUsersPath+"/{id}/admin", h.setUserFlag)
		r.POST(views.AdminUsersPath+"/{id}/delete", h.deleteUser)
	})
}

func (h *AdminHandler) dashboard(c internal.Context) error {
	var s views.Stats
	one := services.ListParams{Page: 1, Limit: 1}
	g, ctx := errgroup.WithContext(apiCtx(c))
	g.Go(func() error {
		p, err := h.svc.Posts.List(ctx, one)
		s.Posts = p.Total
		return err
	})
	g.Go(func() error {
		p, err := h.svc.Categories.List(ctx, one)
		s.Categories = p.Total
		return err
	})
	g.Go(func() error {
		p, err := h.svc.Comments.List(ctx, one)
		s.Comments = p.Total
		return err
	})
	g.Go(func() error {
		p, err := h.svc.Users.List(ctx, one)
		s.Users = p.Total
		return err
	})
	if err := g.Wait(); err != nil {
		return backendError(c, err, "Dashboard")
	}
	return render(c, http.StatusOK, views.AdminDashboard(s))
}

// posts

func (h *AdminHandler) posts(c internal.Context) error {
	p := pageParams(c)
	page, err := h.svc.Posts.List(apiCtx(c), p)
	if err != nil {
		return backendError(c, err, "Posts")
	}
	return render(c, http.StatusOK, views.AdminPosts(page, p.Search))
}

// allCategories lists categories for the post editor. Failures leave the picker empty.
func (h *AdminHandler) allCategories(c internal.Context) []services.Category {
	page, err := h.svc.Categories.List(apiCtx(c), services.ListParams{})
	if err != nil {
		c.LogWarn("failed to load categories", "error", err)
		return nil
	}
	return page.Items
}

func (h *AdminHandler) newPost(c internal.Context) error {
	f := forms.NewPost()
	return render(c, http.StatusOK, views.AdminPostEditor("New post",
		views.PostForm(f, views.AdminNewPostPath, "Publish", h.allCategories(c), nil)))
}

func (h *AdminHandler) editPost(c internal.Context) error {
	slug := c.Param("slug")
	p, err := h.svc.Posts.Get(apiCtx(c), slug)
	if err != nil {
		return backendError(c, err, "Post")
	}
	selected := make([]string, 0, len(p.Categories))
	for _, cat := range p.Categories {
		selected = append(selected, cat.ID)
	}
	f := forms.NewPost()
	f.Load(url.Values{
		forms.Title:   {p.Title},
		forms.Caption: {p.Caption},
		forms.Slug:    {p.Slug},
		forms.Body:    {p.Body},
		forms.Tags:    {strings.Join(p.Tags, ", ")},
	})
	return render(c, http.StatusOK, views.AdminPostEditor("Edit post",
		views.PostForm(f, views.AdminEditPostPath(slug), "Save", h.allCategories(c), selected)))
}

// savePost validates the post form and calls save. The form is re-rendered on failure.
func (h *AdminHandler) savePost(c internal.Context, action, heading, label string, save func(services.PostParams) (services.Post, error)) error {
	f := forms.NewPost()
	if err := loadForm(c, f); err != nil {
		return err
	}
	values, _ := c.FormValues()
	selected := values[forms.Categories]

	var saved services.Post
	err := f.Submit(func(v form.Values) error {
		var err error
		saved, err = save(services.PostParams{
			Title:      v.Get(forms.Title),
			Caption:    v.Get(forms.Caption),
			Slug:       postSlug(v),
			Body:       v.Get(forms.Body),
			Tags:       forms.SplitList(v.Get(forms.Tags)),
			Categories: selected,
		})
		return err
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !isInvalid(err) {
			status = http.StatusOK
			toast.Error(c.Context(), err.Error())
		}
		pf := views.PostForm(f, action, label, h.allCategories(c), selected)
		return fragment(c, status, pf, views.AdminPostEditor(heading, pf))
	}

	invalidate(c, h.q, NSPosts)
	toast.Success(c.Context(), "Post \""+saved.Title+"\" saved.")
	return seeOther(c, views.AdminPostsPath)
}

// postSlug normalizes the submitted slug, deriving it from the title when empty.
func postSlug(v form.Values) string {
	s := v.Get(forms.Slug)
	if s == "" {
		s = v.Get(forms.Title)
	}
	return slug.Make(s, slug.MaxLength(maxSlugLen))
}

func (h *AdminHandler) createPost(c internal.Context) error {
	return h.savePost(c, views.AdminNewPostPath, "New post", "Publish", func(p services.PostParams) (services.Post, error) {
		return h.svc.Posts.Create(apiCtx(c), p)
	})
}

func (h *AdminHandler) updatePost(c internal.Context) error {
	slug := c.Param("slug")
	return h.savePost(c, views.AdminEditPostPath(slug), "Edit post", "Save", func(p services.PostParams) (services.Post, error) {
		return h.svc.Posts.Update(apiCtx(c), slug, p)
	})
}

func (h *AdminHandler) deletePost(c internal.Context) error {
	if _, err := h.svc.Posts.Delete(apiCtx(c), c.Param("slug")); err != nil {
		return actionError(c, err)
	}
	invalidate(c, h.q, NSPosts)
	return h.removed(c, "Post deleted.", views.AdminPostsPath)
}

// categories

func (h *AdminHandler) categories(c internal.Context) error {
	return h.renderCategories(c, http.StatusOK, forms.NewCategory())
}

func (h *AdminHandler) renderCategories(c internal.Context, status int, f *form.Form) error {
	page, err := h.svc.Categories.List(apiCtx(c), pageParams(c))
	if err != nil {
		return backendError(c, err, "Categories")
	}
	return render(c, status, views.AdminCategories(page, f))
}

func (h *AdminHandler) createCategory(c internal.Context) error {
	f := forms.NewCategory()
	if err := loadForm(c, f); err != nil {
		return err
	}
	err := f.Submit(func(v form.Values) error {
		_, err := h.svc.Categories.Create(apiCtx(c), v.Get(forms.Title))
		return err
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !isInvalid(err) {
			status = http.StatusOK
			toast.Error(c.Context(), err.Error())
		}
		if c.IsHTMX() {
			return c.Render(status, views.CategoryForm(f, views.AdminCategoriesPath, "Add category"))
		}
		return h.renderCategories(c, status, f)
	}
	invalidate(c, h.q, NSCategories)
	toast.Success(c.Context(), "Category created.")
	return seeOther(c, views.AdminCategoriesPath)
}

func (h *AdminHandler) editCategory(c internal.Context) error {
	id := c.Param("categoryId")
	cat, err := h.svc.Categories.Get(apiCtx(c), id)
	if err != nil {
		return backendError(c, err, "Category")
	}
	f := forms.NewCategory()
	f.Load(url.Values{forms.Title: {cat.Title}})
	return render(c, http.StatusOK, views.AdminCategoryEditor(id, f))
}

func (h *AdminHandler) updateCategory(c internal.Context) error {
	id := c.Param("categoryId")
	f := forms.NewCategory()
	if err := loadForm(c, f); err != nil {
		return err
	}
	err := f.Submit(func(v form.Values) error {
		_, err := h.svc.Categories.Update(apiCtx(c), id, v.Get(forms.Title))
		return err
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !isInvalid(err) {
			status = http.StatusOK
			toast.Error(c.Context(), err.Error())
		}
		return fragment(c, status, views.CategoryForm(f, views.AdminEditCategoryPath(id), "Save"), views.AdminCategoryEditor(id, f))
	}
	invalidate(c, h.q, NSCategories, NSPosts)
	toast.Success(c.Context(), "Category updated.")
	return seeOther(c, views.AdminCategoriesPath)
}

func (h *AdminHandler) deleteCategory(c internal.Context) error {
	if _, err := h.svc.Categories.Delete(apiCtx(c), c.Param("categoryId")); err != nil {
		return actionError(c, err)
	}
	invalidate(c, h.q, NSCategories, NSPosts)
	return h.removed(c, "Category deleted.", views.AdminCategoriesPath)
}

// comments

func (h *AdminHandler) comments(c internal.Context) error {
	page, err := h.svc.Comments.List(apiCtx(c), pageParams(c))
	if err != nil {
		return backendError(c, err, "Comments")
	}
	return render(c, http.StatusOK, views.AdminComments(page))
}

func (h *AdminHandler) checkComment(c internal.Context) error {
	check, err := strconv.ParseBool(c.Query("value"))
	if err != nil {
		return internal.ErrBadRequest("Invalid moderation value", internal.WithError(err))
	}
	cm, err := h.svc.Comments.Update(apiCtx(c), c.Param("id"), services.CommentUpdate{Check: &check})
	if err != nil {
		return actionError(c, err)
	}
	invalidate(c, h.q, NSPosts)
	if check {
		toast.Success(c.Context(), "Comment approved.")
	} else {
		toast.Success(c.Context(), "Comment hidden.")
	}
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.CommentRow(cm))
	}
	return seeOther(c, views.AdminCommentsPath)
}

func (h *AdminHandler) deleteComment(c internal.Context) error {
	if _, err := h.svc.Comments.Delete(apiCtx(c), c.Param("id")); err != nil {
		return actionError(c, err)
	}
	invalidate(c, h.q, NSPosts)
	return h.removed(c, "Comment deleted.", views.AdminCommentsPath)
}

// users

func (h *AdminHandler) users(c internal.Context) error {
	p := pageParams(c)
	page, err := h.svc.Users.List(apiCtx(c), p)
	if err != nil {
		return backendError(c, err, "Users")
	}
	return render(c, http.StatusOK, views.AdminUsers(page, p.Search))
}

// setUserFlag serves both the verified and the admin toggle; the flag is the last path segment.
func (h *AdminHandler) setUserFlag(c internal.Context) error {
	on, err := strconv.ParseBool(c.Query("value"))
	if err != nil {
		return internal.ErrBadRequest("Invalid flag value", internal.WithError(err))
	}
	var flags services.UserFlags
	switch {
	case strings.HasSuffix(c.Request().URL.Path, "/admin"):
		flags.Admin = &on
	default:
		flags.Verified = &on
	}
	u, err := h.svc.Users.Update(apiCtx(c), c.Param("id"), flags)
	if err != nil {
		return actionError(c, err)
	}
	toast.Success(c.Context(), "User "+u.Name+" updated.")
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.UserRow(u))
	}
	return seeOther(c, views.AdminUsersPath)
}

func (h *AdminHandler) deleteUser(c internal.Context) error {
	if _, err := h.svc.Users.Delete(apiCtx(c), c.Param("id")); err != nil {
		return actionError(c, err)
	}
	return h.removed(c, "User deleted.", views.AdminUsersPath)
}

// removed answers a successful delete: htmx swaps the row out, browsers go back to the list.
func (h *AdminHandler) removed(c internal.Context, msg, list string) error {
	toast.Success(c.Context(), msg)
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.Empty())
	}
	return seeOther(c, list)
}
