// Package anthropic implements the alternate-prose provider variant: the
// conversation is flattened into a single "[role] content" transcript and
// sent to the prose completion endpoint. The variant cannot advertise tools;
// callers relying on tool calling should select a different provider.
package anthropic

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parley-ai/parley/internal/utils"
	"github.com/parley-ai/parley/providers/ai"
	"github.com/parley-ai/parley/providers/observability"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	completeEndpoint = "/v1/complete"

	// DefaultModel is used when the request carries no model name.
	DefaultModel = "claude-2"
)

// Provider implements ai.Provider for the prose completion backend.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	retry   utils.RetryPolicy
}

var _ ai.Provider = (*Provider)(nil)

// New creates a provider with the default endpoint and retry policy.
func New() *Provider {
	return &Provider{
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// WithRetryPolicy sets the transport retry policy.
func (p *Provider) WithRetryPolicy(policy utils.RetryPolicy) *Provider {
	p.retry = policy
	return p
}

// WithAPIKey sets the bearer token used for authentication.
func (p *Provider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the default API base URL.
func (p *Provider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *Provider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements ai.Provider.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key is not set")
	}

	if request.Model == "" {
		request.Model = DefaultModel
	}

	observability.FromContext(ctx).Debug(ctx, "dispatching prose completion",
		observability.String(observability.AttrProvider, "anthropic"),
		observability.String(observability.AttrModel, request.Model),
		observability.Int(observability.AttrMessageCount, len(request.Messages)),
	)

	wireResp, err := utils.DoPostJSON[completeResponse](
		ctx, p.client, p.baseURL+completeEndpoint, p.apiKey, requestFromGeneric(request), p.retry)
	if err != nil {
		return nil, err
	}

	return responseToGeneric(*wireResp)
}

// IsStopMessage reports whether the response is terminal. Prose completions
// never request tools, so every reply is terminal.
func (p *Provider) IsStopMessage(response *ai.ChatResponse) bool {
	return true
}
