// Package openai implements the completions-style provider variant: a
// role/content message array with a functions catalog over the legacy
// chat-completions wire shape, authenticated with a bearer token.
package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parley-ai/parley/internal/utils"
	"github.com/parley-ai/parley/providers/ai"
	"github.com/parley-ai/parley/providers/observability"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// DefaultModel is used when the request carries no model name.
	DefaultModel = "gpt-4o-mini"
)

// Provider implements ai.Provider for the completions-style backend.
type Provider struct {
	apiKey         string
	baseURL        string
	client         *http.Client
	retry          utils.RetryPolicy
	allowAnonymous bool
}

var _ ai.Provider = (*Provider)(nil)

// New creates a provider with the default endpoint and retry policy.
// Credentials come from configuration via WithAPIKey.
func New() *Provider {
	return &Provider{
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// NewCompatible creates a provider for an endpoint that speaks the same wire
// shape but requires no authentication, such as a locally hosted daemon.
// No Authorization header is sent unless an API key is set explicitly.
func NewCompatible(baseURL string) *Provider {
	return &Provider{
		baseURL:        baseURL,
		client:         &http.Client{},
		allowAnonymous: true,
	}
}

// WithRetryPolicy sets the transport retry policy. Returns the concrete type
// so it can be chained before the ai.Provider builders.
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

// SendMessage implements ai.Provider. Rendering and parsing are pure; all
// network retries happen inside the transport call between them.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" && !p.allowAnonymous {
		return nil, fmt.Errorf("openai: API key is not set")
	}

	if request.Model == "" {
		request.Model = DefaultModel
	}

	observability.FromContext(ctx).Debug(ctx, "dispatching chat completion",
		observability.String(observability.AttrProvider, "openai"),
		observability.String(observability.AttrModel, request.Model),
		observability.Int(observability.AttrMessageCount, len(request.Messages)),
		observability.Int(observability.AttrToolCount, len(request.Tools)),
	)

	wireResp, err := utils.DoPostJSON[chatCompletionResponse](
		ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, requestFromGeneric(request), p.retry)
	if err != nil {
		return nil, err
	}

	return responseToGeneric(*wireResp)
}

// IsStopMessage reports whether the response is a terminal completion.
func (p *Provider) IsStopMessage(response *ai.ChatResponse) bool {
	if response == nil {
		return true
	}
	switch response.FinishReason {
	case ai.FinishStop, ai.FinishLength, ai.FinishError:
		return true
	case ai.FinishToolCall:
		return false
	}
	return len(response.Message.ToolCalls) == 0
}
