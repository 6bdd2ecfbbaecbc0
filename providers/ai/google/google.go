// Package google implements the structured-message provider variant: the
// conversation is rendered as {author, content} pairs and the API key is
// carried as a query-string parameter instead of a bearer header. It is the
// only variant that does not use bearer authentication.
package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/parley-ai/parley/internal/utils"
	"github.com/parley-ai/parley/providers/ai"
	"github.com/parley-ai/parley/providers/observability"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta2"

	// DefaultModel is used when the request carries no model name.
	DefaultModel = "chat-bison-001"
)

// Provider implements ai.Provider for the structured-message backend.
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

// WithAPIKey sets the API key appended to the request URL.
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

// SendMessage implements ai.Provider. Authentication is a ?key= query
// parameter; the bearer slot of the transport stays empty.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("google: API key is not set")
	}

	model := request.Model
	if model == "" {
		model = DefaultModel
	}

	observability.FromContext(ctx).Debug(ctx, "dispatching structured-message request",
		observability.String(observability.AttrProvider, "google"),
		observability.String(observability.AttrModel, model),
		observability.Int(observability.AttrMessageCount, len(request.Messages)),
	)

	endpoint := fmt.Sprintf("%s/models/%s:generateMessage?key=%s",
		p.baseURL, model, url.QueryEscape(p.apiKey))

	wireResp, err := utils.DoPostJSON[generateMessageResponse](
		ctx, p.client, endpoint, "", requestFromGeneric(request), p.retry)
	if err != nil {
		return nil, err
	}

	return responseToGeneric(*wireResp)
}

// IsStopMessage reports whether the response is terminal. The
// structured-message endpoint has no tool calling, so every reply is
// terminal.
func (p *Provider) IsStopMessage(response *ai.ChatResponse) bool {
	return true
}
