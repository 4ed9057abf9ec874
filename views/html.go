package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// attr is one HTML attribute. Bare attributes render without a value.
type attr struct {
	key, val string
	bare     bool
	skip     bool
}

func at(key, val string) attr { return attr{key: key, val: val} }

// flag renders a boolean attribute such as disabled when on is true.
func flag(key string, on bool) attr { return attr{key: key, bare: true, skip: !on} }

// when keeps a only if cond holds.
func when(cond bool, a attr) attr {
	a.skip = a.skip || !cond
	return a
}

func writeAttrs(b *strings.Builder, attrs []attr) {
	for _, a := range attrs {
		if a.skip {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.key)
		if a.bare {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(a.val))
		b.WriteByte('"')
	}
}

// el renders <tag attrs>children</tag>.
func el(tag string, attrs []attr, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteByte('<')
		b.WriteString(tag)
		writeAttrs(&b, attrs)
		b.WriteByte('>')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		for _, c := range children {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// void renders an element without a closing tag.
func void(tag string, attrs []attr) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteByte('<')
		b.WriteString(tag)
		writeAttrs(&b, attrs)
		b.WriteByte('>')
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// text renders escaped text.
func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// group renders components one after another.
func group(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range children {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// each maps items to components.
func each[T any](items []T, fn func(int, T) templ.Component) templ.Component {
	out := make([]templ.Component, 0, len(items))
	for i, it := range items {
		out = append(out, fn(i, it))
	}
	return group(out...)
}

// iff returns c when cond holds, nil otherwise.
func iff(cond bool, c templ.Component) templ.Component {
	if !cond {
		return nil
	}
	return c
}

func link(href, label string, extra ...attr) templ.Component {
	return el("a", append([]attr{at("href", href)}, extra...), text(label))
}

func cls(class string) attr { return at("class", class) }
