package middleware

import (
	"context"
	"time"

	"github.com/leofalp/tangshi/core/client"
	"github.com/leofalp/tangshi/providers/ai"
)

// NewTimeoutMiddleware creates a middleware that enforces a fixed deadline on
// every provider call. The implementation wraps the context with
// context.WithTimeout and defers cancel(), so the context is released once the
// provider returns or the deadline expires.
//
// If the caller supplies a context that already has a shorter deadline, that
// shorter deadline wins as per normal context semantics.
func NewTimeoutMiddleware(timeout time.Duration) client.Middleware {
	return NewGrowingTimeoutMiddleware(timeout, 0)
}

// NewGrowingTimeoutMiddleware creates a middleware whose deadline grows with
// each retry: attempt n gets timeout + n*step. The attempt number is read with
// [AttemptFromContext], so this middleware must sit inside the retry
// middleware to see it.
func NewGrowingTimeoutMiddleware(timeout, step time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			deadline := timeout + time.Duration(AttemptFromContext(ctx))*step

			ctx, cancel := context.WithTimeout(ctx, deadline)
			defer cancel()

			return next(ctx, request)
		}
	}
}
