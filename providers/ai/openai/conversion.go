package openai

import (
	"fmt"

	"github.com/parley-ai/parley/providers/ai"
)

// requestFromGeneric converts a provider-agnostic request into the chat-completions wire
// shape. Pure: no I/O, no mutation of the input.
func requestFromGeneric(request ai.ChatRequest) chatCompletionRequest {
	wireReq := chatCompletionRequest{
		Model:       request.Model,
		Messages:    renderMessages(request.Messages),
		MaxTokens:   request.MaxTokens,
		Temperature: request.Temperature,
	}

	if len(request.Tools) > 0 {
		wireReq.Functions = make([]functionDefinition, 0, len(request.Tools))
		for _, t := range request.Tools {
			wireReq.Functions = append(wireReq.Functions, functionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			})
		}
		switch request.ToolChoice {
		case "", ai.ToolChoiceAuto:
			wireReq.FunctionCall = ai.ToolChoiceAuto
		case ai.ToolChoiceNone:
			wireReq.FunctionCall = ai.ToolChoiceNone
		default:
			// A bare tool name forces that function.
			wireReq.FunctionCall = forcedFunction{Name: request.ToolChoice}
		}
	}

	return wireReq
}

func renderMessages(messages []ai.Message) []wireMessage {
	wire := make([]wireMessage, 0, len(messages))
	for _, msg := range messages {
		w := wireMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
			Name:    msg.Name,
		}
		// The legacy functions API carries at most one call per message.
		if len(msg.ToolCalls) > 0 {
			w.FunctionCall = &wireFunctionCall{
				Name:      msg.ToolCalls[0].Name,
				Arguments: msg.ToolCalls[0].Arguments,
			}
		}
		wire = append(wire, w)
	}
	return wire
}

// responseToGeneric converts a decoded wire response into the provider-agnostic form.
// Pure. Returns ai.ErrMalformedResponse when choices is absent or empty, or
// the first choice has no message.
func responseToGeneric(response chatCompletionResponse) (*ai.ChatResponse, error) {
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%w: missing or empty choices", ai.ErrMalformedResponse)
	}

	first := response.Choices[0]
	if first.Message == nil {
		return nil, fmt.Errorf("%w: choice has no message", ai.ErrMalformedResponse)
	}

	message := ai.Message{
		Role:    ai.MessageRole(first.Message.Role),
		Content: first.Message.Content,
		Name:    first.Message.Name,
	}
	if message.Role == "" {
		message.Role = ai.RoleAssistant
	}
	if first.Message.FunctionCall != nil {
		message.ToolCalls = []ai.ToolCall{{
			Name:      first.Message.FunctionCall.Name,
			Arguments: first.Message.FunctionCall.Arguments,
		}}
	}

	return &ai.ChatResponse{
		Message:      message,
		FinishReason: normalizeFinishReason(first.FinishReason, len(message.ToolCalls) > 0),
	}, nil
}

func normalizeFinishReason(wire string, hasToolCalls bool) string {
	switch wire {
	case "stop":
		return ai.FinishStop
	case "length":
		return ai.FinishLength
	case "function_call", "tool_calls":
		return ai.FinishToolCall
	case "":
		if hasToolCalls {
			return ai.FinishToolCall
		}
		return ""
	default:
		return wire
	}
}
