package views

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/pkg/form"
	"github.com/dmitrymomot/blogfront/pkg/sanitizer"
	"github.com/dmitrymomot/blogfront/services"
)

// BlogPath is the article list.
const BlogPath = "/blog"

// ArticlePath returns the detail URL of a post.
func ArticlePath(slug string) string {
	return BlogPath + "/" + url.PathEscape(slug)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func postCard(p services.Post) templ.Component {
	return el("article", []attr{cls("post-card")},
		el("h2", nil, link(ArticlePath(p.Slug), p.Title)),
		el("p", []attr{cls("meta")}, text(p.User.Name+" · "+formatDate(p.CreatedAt))),
		el("p", nil, text(sanitizer.Excerpt(p.Caption, 160))),
		categoryList(p.Categories),
	)
}

func categoryList(cs []services.Category) templ.Component {
	if len(cs) == 0 {
		return nil
	}
	return el("ul", []attr{cls("categories")}, each(cs, func(_ int, c services.Category) templ.Component {
		return el("li", nil, text(c.Title))
	}))
}

// Home renders the latest posts and the category list.
func Home(posts []services.Post, categories []services.Category) templ.Component {
	var latest templ.Component = el("p", []attr{cls("empty")}, text("No articles yet."))
	if len(posts) > 0 {
		latest = each(posts, func(_ int, p services.Post) templ.Component { return postCard(p) })
	}
	return group(
		el("section", []attr{cls("hero")},
			el("h1", nil, text("Read the latest articles")),
			el("form", []attr{at("method", "get"), at("action", BlogPath)},
				void("input", []attr{at("type", "search"), at("name", "q"), at("placeholder", "Search articles")}),
				el("button", []attr{at("type", "submit")}, text("Search")),
			),
		),
		el("section", []attr{cls("latest")}, el("h2", nil, text("Latest")), latest),
		el("aside", nil, el("h2", nil, text("Categories")), categoryList(categories)),
		el("p", nil, link(BlogPath, "All articles")),
	)
}

// BlogList renders a page of posts with search and pagination.
func BlogList(page apiclient.Page[services.Post], query string) templ.Component {
	var items templ.Component = el("p", []attr{cls("empty")}, text("No articles found."))
	if len(page.Items) > 0 {
		items = each(page.Items, func(_ int, p services.Post) templ.Component { return postCard(p) })
	}
	return el("section", []attr{at("id", "blog-list")},
		el("h1", nil, text("Articles")),
		el("form", []attr{
			at("method", "get"),
			at("action", BlogPath),
			at("hx-get", BlogPath),
			at("hx-target", "#"+MainID),
			at("hx-push-url", "true"),
			at("hx-trigger", "input changed delay:400ms from:find input, submit"),
		},
			void("input", []attr{at("type", "search"), at("name", "q"), at("value", query), at("placeholder", "Search articles")}),
		),
		items,
		Pagination(BlogPath, query, page.Page, page.Pages),
	)
}

// Pagination renders prev/next links preserving the search query.
func Pagination(base, query string, current, pages int) templ.Component {
	if pages <= 1 {
		return nil
	}
	href := func(n int) string {
		v := url.Values{}
		if query != "" {
			v.Set("q", query)
		}
		v.Set("page", strconv.Itoa(n))
		return base + "?" + v.Encode()
	}
	return el("nav", []attr{cls("pagination"), at("aria-label", "Pagination")},
		iff(current > 1, link(href(current-1), "Previous", at("rel", "prev"))),
		el("span", nil, text("Page "+strconv.Itoa(current)+" of "+strconv.Itoa(pages))),
		iff(current < pages, link(href(current+1), "Next", at("rel", "next"))),
	)
}

// Article renders a post. bodyHTML must already be rendered and sanitized.
func Article(p services.Post, bodyHTML string, comments templ.Component) templ.Component {
	var photo templ.Component
	if p.Photo != "" {
		photo = void("img", []attr{cls("cover"), at("src", p.Photo), at("alt", p.Title)})
	}
	return el("article", []attr{cls("post")},
		el("h1", nil, text(p.Title)),
		el("p", []attr{cls("meta")}, text(p.User.Name+" · "+formatDate(p.CreatedAt))),
		photo,
		categoryList(p.Categories),
		el("div", []attr{cls("post-body")}, templ.Raw(bodyHTML)),
		tagList(p.Tags),
		comments,
	)
}

func tagList(tags []string) templ.Component {
	if len(tags) == 0 {
		return nil
	}
	return el("p", []attr{cls("tags")}, text("#"+strings.Join(tags, " #")))
}

// CommentForm renders the comment <form> of a post.
func CommentForm(f *form.Form, slug string) templ.Component {
	lf := liveForm{
		Form:        f,
		ID:          "comment-form",
		Action:      ArticlePath(slug) + "/comments",
		SubmitLabel: "Comment",
	}
	return lf.Wrap(lf.TextArea(forms.Desc, "Your comment", "4"))
}

// Comments renders the approved comment thread and, for signed-in visitors, the form.
func Comments(list []services.Comment, f *form.Form, slug string, canComment bool) templ.Component {
	var formPart templ.Component = el("p", nil, link(LoginPath+"?next="+url.QueryEscape(ArticlePath(slug)), "Sign in"), text(" to leave a comment."))
	if canComment {
		formPart = CommentForm(f, slug)
	}
	return el("section", []attr{at("id", "comments"), cls("comments")},
		el("h2", nil, text("Comments ("+strconv.Itoa(countComments(list))+")")),
		commentThread(list),
		formPart,
	)
}

func countComments(list []services.Comment) int {
	n := 0
	for _, c := range list {
		if c.Check {
			n += 1 + countComments(c.Replies)
		}
	}
	return n
}

func commentThread(list []services.Comment) templ.Component {
	var items []templ.Component
	for _, c := range list {
		if !c.Check {
			continue
		}
		var to templ.Component
		if c.ReplyOnUser != nil {
			to = el("span", []attr{cls("reply-to")}, text(" to "+c.ReplyOnUser.Name))
		}
		items = append(items, el("li", []attr{at("id", "comment-"+c.ID)},
			el("p", []attr{cls("meta")}, text(c.User.Name), to, text(" · "+formatDate(c.CreatedAt))),
			el("p", nil, templ.Raw(sanitizer.Comment(c.Desc))),
			commentThread(c.Replies),
		))
	}
	if len(items) == 0 {
		return nil
	}
	return el("ul", []attr{cls("comment-thread")}, items...)
}
