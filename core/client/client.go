package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/leofalp/tangshi/providers/ai"
)

// Generator produces raw model text for a prompt. It is the capability the
// game depends on; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// ClientOptions holds the settings applied to every request a Client sends.
type ClientOptions struct {
	// Model overrides the provider's default model when set.
	Model string

	// Temperature is the sampling temperature; zero keeps the provider default.
	Temperature float32

	// MaxTokens caps the completion length; zero keeps the provider default.
	MaxTokens int

	// Middlewares wrap every provider call, outermost first.
	Middlewares []Middleware
}

// WithModel sets the model requested on every call.
func WithModel(model string) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float32) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Temperature = temperature
	}
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(maxTokens int) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.MaxTokens = maxTokens
	}
}

// WithMiddleware appends middlewares to the chain. The first middleware
// passed across all calls is the outermost wrapper.
func WithMiddleware(middlewares ...Middleware) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}

// Client sends single-turn prompts to a provider through a middleware chain.
// It holds no conversation state and is safe for concurrent use.
type Client struct {
	send    SendFunc
	options ClientOptions
}

var _ Generator = (*Client)(nil)

// New builds a Client for provider. It fails when provider or any middleware
// is nil.
func New(provider ai.Provider, opts ...func(*ClientOptions)) (*Client, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	var options ClientOptions
	for _, opt := range opts {
		opt(&options)
	}

	for i, middleware := range options.Middlewares {
		if middleware == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilMiddleware, i)
		}
	}

	return &Client{
		send:    buildSendChain(provider, options.Middlewares),
		options: options,
	}, nil
}

// Send dispatches a fully built request through the middleware chain.
func (c *Client) Send(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	response, err := c.send(ctx, request)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, ai.ErrEmptyResponse
	}

	return response, nil
}

// Generate sends prompt with an optional system prompt and returns the raw
// completion text.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	request := ai.ChatRequest{
		Model:        c.options.Model,
		SystemPrompt: systemPrompt,
		Messages:     []ai.Message{{Role: ai.RoleUser, Content: prompt}},
	}
	if c.options.Temperature > 0 || c.options.MaxTokens > 0 {
		request.GenerationConfig = &ai.GenerationConfig{
			Temperature: c.options.Temperature,
			MaxTokens:   c.options.MaxTokens,
		}
	}

	response, err := c.Send(ctx, request)
	if err != nil {
		return "", err
	}

	return response.Content, nil
}
