package session

import "errors"

var (
	// ErrNotConfigured is returned when sessions are used without a store.
	ErrNotConfigured = errors.New("session: not configured")

	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has expired.
	ErrExpired = errors.New("session: expired")

	// ErrCorrupted is returned when a stored session cannot be decoded.
	ErrCorrupted = errors.New("session: corrupted data")
)
