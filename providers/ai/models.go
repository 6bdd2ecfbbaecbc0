package ai

import "github.com/parley-ai/parley/internal/jsonschema"

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest is the provider-agnostic completion request. It carries a
// snapshot of the conversation so that appends made while the request is in
// flight cannot leak into it.
type ChatRequest struct {
	Model       string            `json:"model,omitempty"`
	Messages    []Message         `json:"messages"`              // Full ordered history, system message first
	Tools       []ToolDescription `json:"tools,omitempty"`       // Advertised tool catalog, if any
	ToolChoice  string            `json:"tool_choice,omitempty"` // ToolChoiceAuto, ToolChoiceNone, or a forced tool name
	MaxTokens   int               `json:"max_tokens,omitempty"`
	Temperature float32           `json:"temperature,omitempty"` // Sampling temperature [0..2]
}

// Tool choice values. Any other value is interpreted as the name of the
// single tool the provider must call.
const (
	ToolChoiceAuto = "auto"
	ToolChoiceNone = "none"
)

// ToolDescription advertises one callable tool to a provider.
type ToolDescription struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// Message represents a single message in a conversation. Messages are
// values: once appended to a history they are never edited.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`

	// Name is set only for RoleTool messages and carries the name of the
	// tool that produced the content.
	Name string `json:"name,omitempty"`

	// ToolCalls is set on assistant messages that request tool execution.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON-encoded arguments, shape per the tool's parameter schema
}

/*
	##### PROVIDER OUTPUT #####
*/

// ChatResponse is the provider-agnostic reply to a ChatRequest.
type ChatResponse struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// Finish reasons normalized across providers. Providers that report no
// finish reason leave the field empty.
const (
	FinishStop     = "stop"
	FinishToolCall = "tool_call"
	FinishLength   = "length"
	FinishError    = "error"
)

/*
	##### ENUMS #####
*/

// MessageRole represents the role of a message; compatible with string.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
	RoleTool      MessageRole = "tool"      // Tool/function output
)
