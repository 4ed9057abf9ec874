package apiclient

import (
	"context"
	"net/http"
	"time"
)

// Observer receives one call per completed request.
// status is zero when the request failed in transport.
type Observer func(op, method string, status int, elapsed time.Duration, err error)

// Option configures a Client.
type Option func(*options)

// ContextHeader reads a per-request header value from the call context.
type ContextHeader func(ctx context.Context) (string, bool)

type options struct {
	httpClient *http.Client
	headers    http.Header
	ctxHeaders map[string]ContextHeader
	observers  []Observer
}

// WithHTTPClient sets a custom HTTP client, mainly for tests and custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Set(key, value)
	}
}

// WithObserver registers a callback for request metrics or logging.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// WithContextHeader sends name on every request whose context yields a value,
// e.g. the request ID of the page that triggered the call.
func WithContextHeader(name string, fn ContextHeader) Option {
	return func(o *options) {
		if fn == nil {
			return
		}
		if o.ctxHeaders == nil {
			o.ctxHeaders = map[string]ContextHeader{}
		}
		o.ctxHeaders[http.CanonicalHeaderKey(name)] = fn
	}
}
