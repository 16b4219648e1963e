package ai

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned before any request is made when no API key
	// has been configured.
	ErrMissingAPIKey = errors.New("ai: API key is not set")

	// ErrUnauthorized is wrapped by a StatusError carrying 401 or 403.
	ErrUnauthorized = errors.New("ai: API key invalid or insufficient permissions")

	// ErrEmptyResponse is returned when the provider answers without any
	// completion choice.
	ErrEmptyResponse = errors.New("ai: response contained no choices")
)

// StatusError is a non-2xx HTTP answer from a provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps authentication failures to ErrUnauthorized.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}

	return nil
}

// Temporary reports whether the same request may succeed later: rate
// limiting, server errors and the 529 overload status some gateways use.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
