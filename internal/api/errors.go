package api

import "errors"

var (
	// ErrServerUnavailable indicates the Schedule Foundation server is
	// unreachable.
	ErrServerUnavailable = errors.New("schedule server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("api request timed out")

	// ErrRequestFailed indicates the server rejected the request; the
	// wrapped message carries the server's error string verbatim.
	ErrRequestFailed = errors.New("api request failed")

	// ErrValidation indicates the input was rejected client-side
	// before any network call was made.
	ErrValidation = errors.New("invalid input")
)
