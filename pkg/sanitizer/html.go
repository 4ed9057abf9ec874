// Package sanitizer cleans HTML coming from the backend before it is rendered.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  *bluemonday.Policy
	commentPolicy *bluemonday.Policy
	articlePolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		commentPolicy = bluemonday.NewPolicy()
		commentPolicy.AllowStandardURLs()
		commentPolicy.AllowElements("p", "br", "strong", "b", "em", "i", "code")
		commentPolicy.AllowAttrs("href").OnElements("a")
		commentPolicy.RequireNoFollowOnLinks(true)
		commentPolicy.AddTargetBlankToFullyQualifiedLinks(true)

		articlePolicy = bluemonday.UGCPolicy()
		articlePolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
		articlePolicy.AllowAttrs("id").Matching(bluemonday.Paragraph).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		articlePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// Article keeps the formatting of rendered post bodies: headings, lists, tables,
// images, code blocks with language classes and links.
func Article(s string) string {
	initPolicies()
	return articlePolicy.Sanitize(s)
}

// Comment keeps inline formatting and nofollow links.
func Comment(s string) string {
	initPolicies()
	return commentPolicy.Sanitize(s)
}

// StripHTML removes every tag and returns unescaped plain text, e.g. for captions and titles.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// Excerpt returns at most n runes of plain text, ending with an ellipsis when cut.
func Excerpt(s string, n int) string {
	text := strings.Join(strings.Fields(StripHTML(s)), " ")
	r := []rune(text)
	if n <= 0 || len(r) <= n {
		return text
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
