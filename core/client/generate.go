package client

import (
	"context"
	"fmt"

	"github.com/leofalp/tangshi/core/extract"
)

// GenerateJSON asks g for a completion and extracts a JSON document from it.
// Generator errors are returned as they are; extraction failures are wrapped
// with ErrRetryPrompt.
func GenerateJSON(ctx context.Context, g Generator, prompt, systemPrompt string, opts ...extract.Option) (*extract.Result, error) {
	raw, err := g.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		return nil, err
	}

	result, err := extract.Extract(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetryPrompt, err)
	}

	return result, nil
}

// GenerateAs is GenerateJSON followed by a weakly typed decode into T.
//
// Example:
//
//	type Event struct {
//	    Title string `json:"title"`
//	}
//
//	events, err := client.GenerateAs[struct {
//	    Events []Event `json:"events"`
//	}](ctx, c, prompt, system)
func GenerateAs[T any](ctx context.Context, g Generator, prompt, systemPrompt string, opts ...extract.Option) (T, error) {
	result, err := GenerateJSON(ctx, g, prompt, systemPrompt, opts...)
	if err != nil {
		var zero T
		return zero, err
	}

	out, err := extract.Decode[T](result.Value)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrRetryPrompt, err)
	}

	return out, nil
}
