package views

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/pkg/form"
	"github.com/dmitrymomot/blogfront/services"
)

// Admin paths.
const (
	AdminPath           = "/auth/admin"
	AdminCommentsPath   = AdminPath + "/comments"
	AdminNewPostPath    = AdminPath + "/posts/new"
	AdminPostsPath      = AdminPath + "/posts/manage"
	AdminCategoriesPath = AdminPath + "/categories/manage"
	AdminUsersPath      = AdminPath + "/users/manage"
)

// AdminEditPostPath returns the edit page of a post.
func AdminEditPostPath(slug string) string {
	return AdminPostsPath + "/edit/" + url.PathEscape(slug)
}

// AdminEditCategoryPath returns the edit page of a category.
func AdminEditCategoryPath(id string) string {
	return AdminCategoriesPath + "/edit/" + url.PathEscape(id)
}

// AdminLayout renders the public layout with the admin chrome around the nested outlet.
func AdminLayout(title string, ch Chrome, outlet templ.Component) templ.Component {
	return Page(title, ch, AdminShell(ch, outlet))
}

// AdminShell is the admin chrome: the section menu and the outlet holding the matched child page.
func AdminShell(ch Chrome, outlet templ.Component) templ.Component {
	item := func(href, label string) templ.Component {
		active := ch.Path == href
		return el("li", nil, link(href, label,
			at("hx-get", href),
			at("hx-target", "#"+AdminOutletID),
			at("hx-push-url", "true"),
			when(active, at("aria-current", "page")),
		))
	}
	return el("div", []attr{cls("admin")},
		el("aside", []attr{cls("admin-menu")},
			el("ul", nil,
				item(AdminPath, "Dashboard"),
				item(AdminCommentsPath, "Comments"),
				item(AdminNewPostPath, "New post"),
				item(AdminPostsPath, "Posts"),
				item(AdminCategoriesPath, "Categories"),
				item(AdminUsersPath, "Users"),
			),
		),
		el("section", []attr{at("id", AdminOutletID)}, outlet),
	)
}

// Stats is the dashboard summary.
type Stats struct {
	Posts      int
	Categories int
	Comments   int
	Users      int
}

// AdminDashboard renders the admin index.
func AdminDashboard(s Stats) templ.Component {
	card := func(label string, n int, href string) templ.Component {
		return el("li", nil, link(href, label+": "+strconv.Itoa(n)))
	}
	return group(
		el("h1", nil, text("Dashboard")),
		el("ul", []attr{cls("stats")},
			card("Posts", s.Posts, AdminPostsPath),
			card("Categories", s.Categories, AdminCategoriesPath),
			card("Comments", s.Comments, AdminCommentsPath),
			card("Users", s.Users, AdminUsersPath),
		),
	)
}

// deleteButton posts a delete and removes the closest row on success.
func deleteButton(action, confirm string) templ.Component {
	return el("form", []attr{
		cls("inline"),
		at("method", "post"),
		at("action", action),
		at("hx-post", action),
		at("hx-target", "closest tr"),
		at("hx-swap", "outerHTML"),
		at("hx-confirm", confirm),
	}, el("button", []attr{at("type", "submit"), cls("danger")}, text("Delete")))
}

func postButton(action, label string, swapRow bool) templ.Component {
	attrs := []attr{cls("inline"), at("method", "post"), at("action", action), at("hx-post", action)}
	if swapRow {
		attrs = append(attrs, at("hx-target", "closest tr"), at("hx-swap", "outerHTML"))
	}
	return el("form", attrs, el("button", []attr{at("type", "submit")}, text(label)))
}

func table(head []string, rows templ.Component) templ.Component {
	return el("table", nil,
		el("thead", nil, el("tr", nil, each(head, func(_ int, h string) templ.Component {
			return el("th", nil, text(h))
		}))),
		el("tbody", nil, rows),
	)
}

func searchBox(action, query string) templ.Component {
	return el("form", []attr{
		at("method", "get"),
		at("action", action),
		at("hx-get", action),
		at("hx-target", "#"+AdminOutletID),
		at("hx-push-url", "true"),
	}, void("input", []attr{at("type", "search"), at("name", "q"), at("value", query), at("placeholder", "Search")}))
}

// AdminComments renders the moderation list.
func AdminComments(page apiclient.Page[services.Comment]) templ.Component {
	return group(
		el("h1", nil, text("Comments")),
		table([]string{"Author", "Comment", "Post", "Created", "Status", ""},
			each(page.Items, func(_ int, c services.Comment) templ.Component { return CommentRow(c) })),
		Pagination(AdminCommentsPath, "", page.Page, page.Pages),
	)
}

// CommentRow is one moderation row; it is also the htmx response after a status change.
func CommentRow(c services.Comment) templ.Component {
	status, toggle := "Pending", "Approve"
	if c.Check {
		status, toggle = "Approved", "Unapprove"
	}
	var post templ.Component
	if c.Post != nil {
		post = link(ArticlePath(c.Post.Slug), c.Post.Title)
	}
	base := AdminCommentsPath + "/" + url.PathEscape(c.ID)
	return el("tr", []attr{at("id", "comment-row-"+c.ID)},
		el("td", nil, text(c.User.Name)),
		el("td", nil, text(c.Desc)),
		el("td", nil, post),
		el("td", nil, text(formatDate(c.CreatedAt))),
		el("td", nil, text(status)),
		el("td", nil,
			postButton(base+"/check?value="+strconv.FormatBool(!c.Check), toggle, true),
			deleteButton(base+"/delete", "Delete this comment?"),
		),
	)
}

// PostForm renders the post editor <form>. selected holds the chosen category IDs.
func PostForm(f *form.Form, action, label string, categories []services.Category, selected []string) templ.Component {
	lf := liveForm{Form: f, ID: "post-form", Action: action, SubmitLabel: label}
	picked := make(map[string]bool, len(selected))
	for _, id := range selected {
		picked[id] = true
	}
	options := each(categories, func(_ int, c services.Category) templ.Component {
		return el("option", []attr{at("value", c.ID), flag("selected", picked[c.ID])}, text(c.Title))
	})
	return lf.Wrap(
		lf.Input(forms.Title, "Title", "text"),
		lf.Input(forms.Slug, "Slug (derived from the title when empty)", "text"),
		lf.Input(forms.Caption, "Caption", "text"),
		lf.TextArea(forms.Body, "Body (markdown)", "16"),
		lf.Input(forms.Tags, "Tags (comma separated)", "text"),
		el("div", []attr{cls("field")},
			el("label", []attr{at("for", "post-form-categories")}, text("Categories")),
			el("select", []attr{at("id", "post-form-categories"), at("name", forms.Categories), flag("multiple", true)}, options),
		),
	)
}

// AdminPostEditor renders the new/edit post page around its form.
func AdminPostEditor(heading string, postForm templ.Component) templ.Component {
	return group(
		el("h1", nil, text(heading)),
		postForm,
		el("p", nil, link(AdminPostsPath, "Back to posts")),
	)
}

// AdminPosts renders the post management list.
func AdminPosts(page apiclient.Page[services.Post], query string) templ.Component {
	return group(
		el("h1", nil, text("Posts")),
		el("p", nil, link(AdminNewPostPath, "New post")),
		searchBox(AdminPostsPath, query),
		table([]string{"Title", "Author", "Created", ""},
			each(page.Items, func(_ int, p services.Post) templ.Component {
				return el("tr", nil,
					el("td", nil, link(ArticlePath(p.Slug), p.Title)),
					el("td", nil, text(p.User.Name)),
					el("td", nil, text(formatDate(p.CreatedAt))),
					el("td", nil,
						link(AdminEditPostPath(p.Slug), "Edit"),
						deleteButton(AdminPostsPath+"/"+url.PathEscape(p.Slug)+"/delete", "Delete this post?"),
					),
				)
			})),
		Pagination(AdminPostsPath, query, page.Page, page.Pages),
	)
}

// CategoryForm renders the category <form>.
func CategoryForm(f *form.Form, action, label string) templ.Component {
	lf := liveForm{Form: f, ID: "category-form", Action: action, SubmitLabel: label}
	return lf.Wrap(lf.Input(forms.Title, "Title", "text"))
}

// AdminCategories renders the category list with the create form.
func AdminCategories(page apiclient.Page[services.Category], f *form.Form) templ.Component {
	return group(
		el("h1", nil, text("Categories")),
		CategoryForm(f, AdminCategoriesPath, "Add category"),
		table([]string{"Title", ""},
			each(page.Items, func(_ int, c services.Category) templ.Component {
				return el("tr", nil,
					el("td", nil, text(c.Title)),
					el("td", nil,
						link(AdminEditCategoryPath(c.ID), "Edit"),
						deleteButton(AdminCategoriesPath+"/"+url.PathEscape(c.ID)+"/delete", "Delete this category?"),
					),
				)
			})),
		Pagination(AdminCategoriesPath, "", page.Page, page.Pages),
	)
}

// AdminCategoryEditor renders the edit category page.
func AdminCategoryEditor(id string, f *form.Form) templ.Component {
	return group(
		el("h1", nil, text("Edit category")),
		CategoryForm(f, AdminEditCategoryPath(id), "Save"),
		el("p", nil, link(AdminCategoriesPath, "Back to categories")),
	)
}

// AdminUsers renders the user management list.
func AdminUsers(page apiclient.Page[services.User], query string) templ.Component {
	return group(
		el("h1", nil, text("Users")),
		searchBox(AdminUsersPath, query),
		table([]string{"Name", "Email", "Created", "Verified", "Admin", ""},
			each(page.Items, func(_ int, u services.User) templ.Component { return UserRow(u) })),
		Pagination(AdminUsersPath, query, page.Page, page.Pages),
	)
}

// UserRow is one user row; it is also the htmx response after a flag change.
func UserRow(u services.User) templ.Component {
	base := AdminUsersPath + "/" + url.PathEscape(u.ID)
	toggle := func(name string, on bool) templ.Component {
		label := "No"
		if on {
			label = "Yes"
		}
		return postButton(base+"/"+name+"?value="+strconv.FormatBool(!on), label, true)
	}
	return el("tr", []attr{at("id", "user-row-"+u.ID)},
		el("td", nil, text(u.Name)),
		el("td", nil, text(u.Email)),
		el("td", nil, text(formatDate(u.CreatedAt))),
		el("td", nil, toggle("verified", u.Verified)),
		el("td", nil, toggle("admin", u.Admin)),
		el("td", nil, deleteButton(base+"/delete", "Delete this user?")),
	)
}

// Empty renders nothing; it replaces a deleted table row.
func Empty() templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })
}
