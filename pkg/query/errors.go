package query

import "errors"

var (
	// ErrInvalidSchedule is returned by Refetch for an unparsable cron expression.
	ErrInvalidSchedule = errors.New("query: invalid schedule")

	// ErrDecode is returned when a cached document no longer matches the result type.
	ErrDecode = errors.New("query: failed to decode cached value")
)
