package openai

// Wire types for the chat-completions endpoint (legacy functions API).

type chatCompletionRequest struct {
	Model        string               `json:"model"`
	Messages     []wireMessage        `json:"messages"`
	Functions    []functionDefinition `json:"functions,omitempty"`
	FunctionCall any                  `json:"function_call,omitempty"` // "auto", "none", or forcedFunction
	MaxTokens    int                  `json:"max_tokens,omitempty"`
	Temperature  float32              `json:"temperature,omitempty"`
}

// forcedFunction is the function_call value that forces a specific function.
type forcedFunction struct {
	Name string `json:"name"`
}

type functionDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

type wireMessage struct {
	Role         string            `json:"role"`
	Content      string            `json:"content,omitempty"`
	Name         string            `json:"name,omitempty"`
	FunctionCall *wireFunctionCall `json:"function_call,omitempty"`
}

type wireFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message      *wireMessage `json:"message"`
	FinishReason string       `json:"finish_reason,omitempty"`
}
