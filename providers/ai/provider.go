package ai

import (
	"context"
	"net/http"
)

// Provider is the core interface every LLM backend must satisfy. It covers
// the full lifecycle of a single request: endpoint configuration,
// authentication, dispatch, and response interpretation.
//
// Implementations keep their wire translation pure: rendering a ChatRequest
// into the provider's wire shape and parsing the wire response back perform
// no I/O, so that the retrying transport below them never re-sends a
// request whose body merely failed semantic parsing.
type Provider interface {
	// SendMessage sends a chat request to the provider and returns the
	// completed response. Returns an error when the transport exhausts its
	// retries, the context is cancelled, or the response body does not
	// conform to the provider's wire shape (ErrMalformedResponse).
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// IsStopMessage reports whether the response represents a terminal
	// completion: the model has nothing more to say and no tool calls are
	// pending.
	IsStopMessage(response *ChatResponse) bool

	// WithAPIKey sets the credential used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}
