package anthropic

import (
	"fmt"
	"strings"

	"github.com/parley-ai/parley/providers/ai"
)

// requestFromGeneric converts a provider-agnostic request into the prose
// completion wire shape: the whole history is flattened into one
// newline-joined "[role] content" transcript. Tool descriptors are omitted:
// this endpoint has no function-calling surface, which is a documented
// capability gap of the variant, not an error.
func requestFromGeneric(request ai.ChatRequest) completeRequest {
	return completeRequest{
		Model:             request.Model,
		Prompt:            flattenTranscript(request.Messages),
		MaxTokensToSample: request.MaxTokens,
	}
}

func flattenTranscript(messages []ai.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("[%s] %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

// responseToGeneric converts a decoded wire response into the
// provider-agnostic form. The reply is always an assistant message with no
// tool-call detection; an absent completion field means the body did not
// conform to the wire shape.
func responseToGeneric(response completeResponse) (*ai.ChatResponse, error) {
	if response.Completion == nil {
		return nil, fmt.Errorf("%w: missing completion field", ai.ErrMalformedResponse)
	}

	return &ai.ChatResponse{
		Message: ai.Message{
			Role:    ai.RoleAssistant,
			Content: *response.Completion,
		},
		FinishReason: ai.FinishStop,
	}, nil
}
