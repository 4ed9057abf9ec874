package health

import (
	"errors"
	"fmt"
)

// ErrCheckFailed marks a failed readiness run.
var ErrCheckFailed = errors.New("health: check failed")

// StatusError is returned by HTTPCheck for 5xx answers.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("health: upstream returned %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrCheckFailed
}
