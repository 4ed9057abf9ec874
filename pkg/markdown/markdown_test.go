package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/pkg/markdown"
)

func TestRender(t *testing.T) {
	t.Parallel()

	out, err := markdown.Render("# Hello World\n\nSome **bold** text and a [link](https://go.dev).\n\n" +
		"```go\nfmt.Println(1)\n```\n\n| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="hello-world">Hello World</h1>`)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, `href="https://go.dev"`)
	assert.Contains(t, out, `class="language-go"`)
	assert.Contains(t, out, "<table>")
}

func TestRender_DropsRawHTML(t *testing.T) {
	t.Parallel()

	out, err := markdown.Render("hello <script>alert(1)</script>\n\n[x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}
