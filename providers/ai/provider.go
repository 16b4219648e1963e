package ai

import "context"

// Provider is the interface every chat-completion backend satisfies. It
// covers a single request: message dispatch and response decoding.
// Authentication and endpoint selection are configured on the concrete type.
type Provider interface {
	// SendMessage sends a chat request and returns the completed response.
	// Non-2xx answers are reported as *StatusError so callers can decide
	// whether a retry makes sense.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)
}
