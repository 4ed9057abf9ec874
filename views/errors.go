package views

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

// NotFound is the catch-all page for unmatched paths.
func NotFound() templ.Component {
	return el("section", []attr{cls("not-found")},
		el("h1", nil, text("404")),
		el("p", nil, text("The page you are looking for does not exist.")),
		el("p", nil, link("/", "Back to home")),
	)
}

// ErrorContent renders an error message without the layout.
func ErrorContent(code int, message, requestID string) templ.Component {
	title := http.StatusText(code)
	if title == "" {
		title = "Error"
	}
	var ref templ.Component
	if requestID != "" {
		ref = el("p", []attr{cls("request-id")}, text("Reference: "+requestID))
	}
	return el("section", []attr{cls("error"), at("data-status", strconv.Itoa(code))},
		el("h1", nil, text(strconv.Itoa(code)+" "+title)),
		el("p", nil, text(message)),
		ref,
		el("p", nil, link("/", "Back to home")),
	)
}
