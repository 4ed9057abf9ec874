package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkErrorMessage is the user-facing text of every transport failure.
const NetworkErrorMessage = "Network Error"

var (
	// ErrMissingBaseURL is returned by New when Config.BaseURL is empty.
	ErrMissingBaseURL = errors.New("apiclient: missing base URL")

	// ErrInvalidBaseURL is returned by New when Config.BaseURL cannot be parsed.
	ErrInvalidBaseURL = errors.New("apiclient: invalid base URL")

	// ErrEncodeFailed is returned when the request body cannot be encoded.
	ErrEncodeFailed = errors.New("apiclient: failed to encode request")

	// ErrDecodeFailed is returned when the response body cannot be decoded.
	ErrDecodeFailed = errors.New("apiclient: failed to decode response")
)

// TransportError reports a request that did not produce a response.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return NetworkErrorMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a response the backend rejected.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the HTTP status carried by err.
// Transport failures map to 502, unknown errors to 500.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	if IsTransport(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// IsUnauthorized reports whether the backend rejected the token.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && (ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden)
}
