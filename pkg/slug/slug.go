package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	separator     = '-'
	suffixAlpha   = "0123456789abcdefghijklmnopqrstuvwxyz"
	defaultSuffix = 6
)

// special maps letters that do not decompose into a base letter.
var special = strings.NewReplacer(
	"ß", "ss", "ø", "o", "Ø", "o", "æ", "ae", "Æ", "ae",
	"œ", "oe", "Œ", "oe", "ł", "l", "Ł", "l", "đ", "d", "Đ", "d",
	"&", " and ",
)

type options struct {
	reserved  map[string]bool
	maxLength int
	suffix    int
}

// Option configures Make.
type Option func(*options)

// MaxLength caps the slug length in bytes, cutting at a separator when possible.
// Zero means no limit.
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = max(n, 0)
	}
}

// WithSuffix appends n random lowercase alphanumerics.
func WithSuffix(n int) Option {
	return func(o *options) {
		o.suffix = max(n, 0)
	}
}

// Reserved lists slugs that must not be produced as is; a random suffix is added instead.
func Reserved(slugs ...string) Option {
	return func(o *options) {
		if o.reserved == nil {
			o.reserved = make(map[string]bool, len(slugs))
		}
		for _, s := range slugs {
			o.reserved[strings.ToLower(s)] = true
		}
	}
}

// Make converts s to a lowercase slug.
func Make(s string, opts ...Option) string {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	out := clean(fold(special.Replace(s)))
	if o.maxLength > 0 && len(out) > o.maxLength {
		out = truncate(out, o.maxLength)
	}

	suffix := o.suffix
	if suffix == 0 && (out == "" || o.reserved[out]) {
		suffix = defaultSuffix
	}
	if suffix > 0 {
		if out != "" {
			out += string(separator)
		}
		out += random(suffix)
	}
	return out
}

// fold strips combining marks after canonical decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteRune(separator)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

func truncate(s string, n int) string {
	cut := s[:n]
	if s[n] != separator {
		if i := strings.LastIndexByte(cut, separator); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, string(separator))
}

func random(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i, v := range buf {
		buf[i] = suffixAlpha[int(v)%len(suffixAlpha)]
	}
	return string(buf)
}
