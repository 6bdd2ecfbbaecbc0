package ai

import "errors"

// ErrMalformedResponse marks a response that arrived over a successful
// transport call but does not conform to the provider's wire shape (missing
// or empty required fields). It is terminal for the request: the transport
// layer never retries a semantically unparseable payload, because re-sending
// a request the provider already answered risks duplicate side effects.
//
// Providers wrap it with detail, so test with errors.Is:
//
//	if errors.Is(err, ai.ErrMalformedResponse) { ... }
var ErrMalformedResponse = errors.New("parley: malformed provider response")
