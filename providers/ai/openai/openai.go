package openai

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/leofalp/tangshi/internal/utils"
	"github.com/leofalp/tangshi/providers/ai"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	defaultModel            = "gpt-3.5-turbo"
	defaultTemperature      = 0.8
	chatCompletionsEndpoint = "/chat/completions"
)

// Provider implements ai.Provider for OpenAI-compatible chat completions.
type Provider struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

var _ ai.Provider = (*Provider)(nil)

// New creates a provider configured from OPENAI_API_KEY and
// OPENAI_API_BASE_URL, falling back to the public OpenAI endpoint.
func New() *Provider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:      os.Getenv("OPENAI_API_KEY"),
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       defaultModel,
		temperature: defaultTemperature,
		client:      &http.Client{},
	}
}

// WithAPIKey sets the API key for the provider
func (p *Provider) WithAPIKey(apiKey string) *Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API
func (p *Provider) WithBaseURL(baseURL string) *Provider {
	if baseURL != "" {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
	return p
}

// WithModel sets the model used when a request does not name one.
func (p *Provider) WithModel(model string) *Provider {
	if model != "" {
		p.model = model
	}
	return p
}

// WithTemperature sets the sampling temperature used when a request does not
// carry one.
func (p *Provider) WithTemperature(temperature float64) *Provider {
	p.temperature = temperature
	return p
}

// WithHttpClient sets a custom HTTP client
func (p *Provider) WithHttpClient(httpClient *http.Client) *Provider {
	p.client = httpClient
	return p
}

// SendMessage implements the Provider interface
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, ai.ErrMissingAPIKey
	}

	body := requestFromGeneric(request, p.model, p.temperature)

	_, resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, body)
	if err != nil {
		return nil, err
	}

	if resp == nil || len(resp.Choices) == 0 {
		return nil, ai.ErrEmptyResponse
	}

	return responseToGeneric(*resp), nil
}
