package google

import (
	"fmt"

	"github.com/parley-ai/parley/providers/ai"
)

// requestFromGeneric converts a provider-agnostic request into the
// structured-message wire shape: an array of {author, content} pairs.
// Tool descriptors, max-token, and temperature fields are omitted: the
// endpoint does not support them, a documented capability gap of this
// variant.
func requestFromGeneric(request ai.ChatRequest) generateMessageRequest {
	messages := make([]wireMessage, 0, len(request.Messages))
	for _, msg := range request.Messages {
		messages = append(messages, wireMessage{
			Author:  string(msg.Role),
			Content: msg.Content,
		})
	}
	return generateMessageRequest{Messages: messages}
}

// responseToGeneric converts a decoded wire response into the
// provider-agnostic form. The first candidate becomes an assistant message;
// an empty candidate list means the body did not conform to the wire shape.
func responseToGeneric(response generateMessageResponse) (*ai.ChatResponse, error) {
	if len(response.Candidates) == 0 {
		return nil, fmt.Errorf("%w: missing or empty candidates", ai.ErrMalformedResponse)
	}

	return &ai.ChatResponse{
		Message: ai.Message{
			Role:    ai.RoleAssistant,
			Content: response.Candidates[0].Content,
		},
		FinishReason: ai.FinishStop,
	}, nil
}
