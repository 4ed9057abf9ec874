package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/blogfront/pkg/toast"
)

// Element IDs targeted by htmx.
const (
	MainID        = "main"
	ToastsID      = "toasts"
	AdminOutletID = "admin-outlet"
)

// Chrome is the visitor state shown in the page header.
type Chrome struct {
	UserName      string
	Path          string
	Authenticated bool
	Admin         bool
}

// LayoutFunc wraps page content into a full document.
type LayoutFunc func(title string, ch Chrome, content templ.Component) templ.Component

// MetaKey is the context key under which routes store Meta.
type MetaKey struct{}

// ShellFunc wraps content into the chrome of a nested area, without the document.
type ShellFunc func(ch Chrome, content templ.Component) templ.Component

// Meta is the page metadata attached to a route.
type Meta struct {
	Layout LayoutFunc
	Shell  ShellFunc
	Title  string
}

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Page is the public layout: header navigation, toast stack and main content.
// Toasts queued for this request are drained into the toast stack.
func Page(title string, ch Chrome, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
			return err
		}
		doc := el("html", []attr{at("lang", "en")},
			el("head", nil,
				void("meta", []attr{at("charset", "utf-8")}),
				void("meta", []attr{at("name", "viewport"), at("content", "width=device-width, initial-scale=1")}),
				el("title", nil, text(documentTitle(title))),
				void("link", []attr{at("rel", "stylesheet"), at("href", StaticPath+"app.css")}),
				el("script", []attr{at("src", htmxScript)}),
				el("script", []attr{at("src", StaticPath+"app.js"), flag("defer", true)}),
			),
			el("body", []attr{at("hx-boost", "true")},
				header(ch),
				el("div", []attr{at("id", ToastsID), cls("toasts"), at("aria-live", "polite")},
					toastItems(drain(ctx)),
				),
				el("main", []attr{at("id", MainID)}, content),
				el("footer", nil, text("Blog platform")),
			),
		)
		return doc.Render(ctx, w)
	})
}

func documentTitle(title string) string {
	if title == "" {
		return "Blog"
	}
	return title + " | Blog"
}

func drain(ctx context.Context) []toast.Toast {
	if q := toast.FromContext(ctx); q != nil {
		return q.Drain()
	}
	return nil
}

func header(ch Chrome) templ.Component {
	items := []templ.Component{
		el("li", nil, link("/", "Home")),
		el("li", nil, link("/blog", "Articles")),
	}
	switch {
	case ch.Authenticated:
		if ch.Admin {
			items = append(items, el("li", nil, link("/auth/admin", "Admin")))
		}
		items = append(items,
			el("li", nil, link("/auth/profile", ch.UserName)),
			el("li", nil, el("form", []attr{at("method", "post"), at("action", "/auth/logout")},
				el("button", []attr{at("type", "submit")}, text("Sign out")),
			)),
		)
	default:
		items = append(items,
			el("li", nil, link("/auth/login", "Sign in")),
			el("li", nil, link("/auth/register", "Register")),
		)
	}
	return el("header", nil, el("nav", nil, el("ul", nil, items...)))
}

func toastItems(ts []toast.Toast) templ.Component {
	return each(ts, func(_ int, t toast.Toast) templ.Component {
		return el("div", []attr{
			cls("toast toast-" + string(t.Kind)),
			at("role", toastRole(t.Kind)),
			at("data-timeout", strconv.FormatInt(t.Timeout().Milliseconds(), 10)),
		}, text(t.Message))
	})
}

func toastRole(k toast.Kind) string {
	if k == toast.KindError {
		return "alert"
	}
	return "status"
}

// Toasts appends toasts to the page stack out-of-band. It is the app ToastRenderer.
func Toasts(ts []toast.Toast) templ.Component {
	return el("div", []attr{at("id", ToastsID), at("hx-swap-oob", "beforeend")}, toastItems(ts))
}

// NavigateAfter makes the browser load path once delay has elapsed after the element appears.
// The response carrying it stays a 200; navigation is client side.
func NavigateAfter(path string, delay time.Duration) templ.Component {
	return el("div", []attr{
		cls("navigate-after"),
		at("hx-get", path),
		at("hx-trigger", "load delay:"+strconv.FormatInt(delay.Milliseconds(), 10)+"ms"),
		at("hx-target", "body"),
		at("hx-push-url", "true"),
	})
}
