package internal

import (
	"net"
	"strings"

	"github.com/dmitrymomot/blogfront/pkg/session"
)

// ExtractorSource extracts a value from the request context.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract iterates sources in order and returns the first non-empty value.
// Returns ("", false) if all sources miss.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Header(name)
		return v, v != ""
	}
}

// FromForwardedFor returns the first (client) address of X-Forwarded-For.
func FromForwardedFor() ExtractorSource {
	return func(c Context) (string, bool) {
		first, _, _ := strings.Cut(c.Header("X-Forwarded-For"), ",")
		first = strings.TrimSpace(first)
		return first, first != ""
	}
}

// FromRemoteAddr returns the host part of the connection's remote address.
func FromRemoteAddr() ExtractorSource {
	return func(c Context) (string, bool) {
		addr := c.Request().RemoteAddr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
		return addr, addr != ""
	}
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Query(name)
		return v, v != ""
	}
}

// FromCookie returns a source that reads from a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil || v == "" {
			return "", false
		}
		return v, true
	}
}

// FromParam returns a source that reads from a URL parameter.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Param(name)
		return v, v != ""
	}
}

// FromForm returns a source that reads from a form field.
func FromForm(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Form(name)
		return v, v != ""
	}
}

// FromSession returns a source that reads a session value, e.g. session.KeyUserID.
func FromSession(key string) ExtractorSource {
	return func(c Context) (string, bool) {
		sess, err := c.Session()
		if err != nil || sess == nil {
			return "", false
		}
		v := sess.Get(key)
		return v, v != ""
	}
}

// ClientKey identifies the visitor: signed-in user ID, then proxy headers, then the peer address.
var ClientKey = NewExtractor(
	FromSession(session.KeyUserID),
	FromHeader("X-Real-IP"),
	FromForwardedFor(),
	FromRemoteAddr(),
)
