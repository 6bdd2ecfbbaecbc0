// Package ollama implements the local-daemon provider variant. It speaks
// the same wire shape as the completions-style variant but targets a fixed
// local endpoint with a fixed model identifier and sends no Authorization
// header.
package ollama

import (
	"context"
	"net/http"

	"github.com/parley-ai/parley/internal/utils"
	"github.com/parley-ai/parley/providers/ai"
	"github.com/parley-ai/parley/providers/ai/openai"
)

const (
	// DefaultBaseURL is the local daemon's OpenAI-compatible API root.
	DefaultBaseURL = "http://localhost:11434/v1"

	// Model is the fixed model identifier served by the daemon. Requests
	// always use it regardless of the model named in the request.
	Model = "parley-local"
)

// Provider implements ai.Provider by delegating to a completions-style
// provider pointed at the local daemon.
type Provider struct {
	inner *openai.Provider
}

var _ ai.Provider = (*Provider)(nil)

// New creates a provider targeting the local daemon.
func New() *Provider {
	return &Provider{inner: openai.NewCompatible(DefaultBaseURL)}
}

// WithRetryPolicy sets the transport retry policy.
func (p *Provider) WithRetryPolicy(policy utils.RetryPolicy) *Provider {
	p.inner.WithRetryPolicy(policy)
	return p
}

// WithAPIKey is accepted for interface compatibility; the local daemon does
// not authenticate, so the key is discarded.
func (p *Provider) WithAPIKey(string) ai.Provider {
	return p
}

// WithBaseURL overrides the daemon address (useful for tests).
func (p *Provider) WithBaseURL(baseURL string) ai.Provider {
	p.inner.WithBaseURL(baseURL)
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *Provider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.inner.WithHttpClient(httpClient)
	return p
}

// SendMessage implements ai.Provider. The model identifier is pinned to the
// daemon's fixed model before dispatch.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	request.Model = Model
	return p.inner.SendMessage(ctx, request)
}

// IsStopMessage reports whether the response is a terminal completion.
func (p *Provider) IsStopMessage(response *ai.ChatResponse) bool {
	return p.inner.IsStopMessage(response)
}
