package musixmatch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the provider rejects the user token.
	// Callers may refresh the session once and retry.
	ErrUnauthorized = errors.New("musixmatch: token rejected")

	// ErrLyricsNotFound is returned by single-song callers when the provider
	// had nothing usable for a query.
	ErrLyricsNotFound = errors.New("musixmatch: lyrics not found")

	// ErrInvalidQuery is returned when a query is built without artist,
	// title or token.
	ErrInvalidQuery = errors.New("musixmatch: invalid query")

	errMalformed    = errors.New("response is not valid JSON")
	errMissingToken = errors.New("user_token missing from response")
)

// TokenError reports a failed token bootstrap or refresh.
type TokenError struct {
	// Op is "acquire" or "refresh".
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("musixmatch: token %s failed: %v", e.Op, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// APIError is a non-success status reported inside a 200 response body.
type APIError struct {
	Code int
	Hint string
}

func (e *APIError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("musixmatch: status %d (%s)", e.Code, e.Hint)
	}
	return fmt.Sprintf("musixmatch: status %d", e.Code)
}
