package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const maxBodySize = 10 << 20

// Config holds backend connection settings.
type Config struct {
	BaseURL string        `koanf:"api_url"`
	Timeout time.Duration `koanf:"api_timeout"`
}

// Request describes one backend call.
// Op is a stable operation name used for metrics and logs.
type Request struct {
	Body   any
	Query  url.Values
	Op     string
	Method string
	Path   string
}

// Client performs backend calls.
type Client struct {
	base       *url.URL
	http       *http.Client
	headers    http.Header
	ctxHeaders map[string]ContextHeader
	observers  []Observer
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, fmt.Errorf("parse %q: %v", cfg.BaseURL, err))
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		base:       base,
		http:       httpClient,
		headers:    o.headers,
		ctxHeaders: o.ctxHeaders,
		observers:  o.observers,
	}, nil
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Do performs the request and decodes the payload into out when out is non-nil.
//
// The payload is the "data" member of an envelope or the whole body otherwise.
// A body with a numeric "code" is returned as Result with a nil error.
func (c *Client) Do(ctx context.Context, r Request, out any) (res Result, err error) {
	start := time.Now()
	status := 0
	defer func() {
		for _, obs := range c.observers {
			obs(r.Op, r.Method, status, time.Since(start), err)
		}
	}()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, &TransportError{Op: r.Op, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Result{}, &TransportError{Op: r.Op, Err: fmt.Errorf("read body: %w", err)}
	}

	code := gjson.GetBytes(body, "code")
	message := extractMessage(body)

	if code.Type == gjson.Number {
		res = Result{Code: int(code.Int()), Message: message}
		if out != nil && res.OK() {
			if err := decodePayload(body, out); err != nil {
				return res, err
			}
		}
		return res, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, &APIError{Status: resp.StatusCode, Message: message}
	}

	res = Result{Code: resp.StatusCode, Message: message}
	if out != nil {
		if err := decodePayload(body, out); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Call performs the request and returns the decoded payload.
// Failing application codes are returned as *APIError.
func Call[T any](ctx context.Context, c *Client, r Request) (T, error) {
	var out T
	res, err := c.Do(ctx, r, &out)
	if err != nil {
		return out, err
	}
	if err := res.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, errors.Join(ErrEncodeFailed, err)
		}
		body = bytes.NewReader(b)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for name, fn := range c.ctxHeaders {
		if v, ok := fn(ctx); ok {
			req.Header.Set(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func extractMessage(body []byte) string {
	for _, path := range []string{"message", "error.message", "error"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func decodePayload(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	payload := body
	if data := gjson.GetBytes(body, "data"); data.Exists() {
		payload = []byte(data.Raw)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Join(ErrDecodeFailed, err)
	}
	return nil
}
