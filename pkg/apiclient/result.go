package apiclient

import "net/http"

// Result is the application-level outcome reported by the backend.
type Result struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Created reports whether the backend accepted a new resource.
func (r Result) Created() bool {
	return r.Code == http.StatusCreated
}

// OK reports a 2xx application code.
func (r Result) OK() bool {
	return r.Code >= 200 && r.Code < 300
}

// Err converts a failing code into *APIError. Returns nil for 2xx and 3xx codes.
func (r Result) Err() error {
	if r.Code >= 400 {
		return &APIError{Status: r.Code, Message: r.Message}
	}
	return nil
}

// Envelope is the full backend response body.
type Envelope[T any] struct {
	Data T `json:"data"`
	Result
}

// Page is a paginated list.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// HasNext reports whether another page exists.
func (p Page[T]) HasNext() bool {
	return p.Page < p.Pages
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}
