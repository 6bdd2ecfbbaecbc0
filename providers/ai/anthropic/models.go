package anthropic

// Wire types for the prose completion endpoint.

type completeRequest struct {
	Model             string `json:"model"`
	Prompt            string `json:"prompt"`
	MaxTokensToSample int    `json:"max_tokens_to_sample,omitempty"`
}

type completeResponse struct {
	Completion *string `json:"completion"`
}
