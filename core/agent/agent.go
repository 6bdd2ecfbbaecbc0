// Package agent owns a single conversation against one provider. An Agent
// moves between three implicit states: idle, awaiting the provider's reply
// (SendRequest in flight), and awaiting a tool result (the last reply asked
// for tool execution). Exactly one message is appended per successful
// request; a failed request leaves the history untouched.
package agent

import (
	"context"
	"fmt"

	"github.com/parley-ai/parley/core/config"
	"github.com/parley-ai/parley/internal/utils"
	"github.com/parley-ai/parley/providers/ai"
	"github.com/parley-ai/parley/providers/ai/anthropic"
	"github.com/parley-ai/parley/providers/ai/google"
	"github.com/parley-ai/parley/providers/ai/ollama"
	"github.com/parley-ai/parley/providers/ai/openai"
	"github.com/parley-ai/parley/providers/memory"
	"github.com/parley-ai/parley/providers/memory/array"
	"github.com/parley-ai/parley/providers/observability"
	"github.com/parley-ai/parley/providers/tool"
)

// Agent binds one conversation history to an immutable configuration and a
// provider. The history is owned exclusively by this Agent; the catalog and
// config are the only data shared with other agents, and both are read-only.
type Agent struct {
	provider ai.Provider
	cfg      config.Config
	history  memory.Conversation
	catalog  *tool.Catalog
}

// Option customizes an Agent at construction.
type Option func(*Agent)

// WithProvider injects a pre-built provider, bypassing the config-driven
// selection (and its credential check). Used by tests and by callers with
// exotic endpoints.
func WithProvider(provider ai.Provider) Option {
	return func(a *Agent) {
		a.provider = provider
	}
}

// New constructs an Agent from the given immutable config and shared
// read-only catalog (nil means no tools are advertised). The conversation is
// seeded with exactly one system message, which is never removed.
func New(cfg config.Config, catalog *tool.Catalog, opts ...Option) (*Agent, error) {
	a := &Agent{
		cfg:     cfg,
		catalog: catalog,
		history: array.New(ai.Message{Role: ai.RoleSystem, Content: cfg.SystemPrompt}),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.provider == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		a.provider = providerForKind(cfg)
	}

	return a, nil
}

// providerForKind selects the provider variant for the configured kind.
// Unrecognized kinds fall back to the completions-style variant; the
// fallback is a documented default, not an error.
func providerForKind(cfg config.Config) ai.Provider {
	policy := utils.RetryPolicy{
		Attempts:    cfg.RetryCount,
		BackoffBase: cfg.BackoffBase,
	}

	switch cfg.Provider {
	case config.ProviderAnthropic:
		p := anthropic.New().WithRetryPolicy(policy)
		if cfg.BaseURL != "" {
			p.WithBaseURL(cfg.BaseURL)
		}
		return p.WithAPIKey(cfg.APIKey)

	case config.ProviderOllama:
		p := ollama.New().WithRetryPolicy(policy)
		if cfg.BaseURL != "" {
			p.WithBaseURL(cfg.BaseURL)
		}
		return p

	case config.ProviderGoogle:
		p := google.New().WithRetryPolicy(policy)
		if cfg.BaseURL != "" {
			p.WithBaseURL(cfg.BaseURL)
		}
		return p.WithAPIKey(cfg.GoogleAPIKey)

	default:
		p := openai.New().WithRetryPolicy(policy)
		if cfg.BaseURL != "" {
			p.WithBaseURL(cfg.BaseURL)
		}
		return p.WithAPIKey(cfg.APIKey)
	}
}

// AddUserMessage appends a user turn to the conversation.
func (a *Agent) AddUserMessage(content string) {
	a.history.Append(ai.Message{Role: ai.RoleUser, Content: content})
}

// AddToolResult appends the external tool layer's result as a tool turn.
// Failed or non-conforming tool output travels the same path: it is recorded
// as an ordinary tool message describing the failure, never as a core error.
func (a *Agent) AddToolResult(name, content string) {
	a.history.Append(ai.Message{Role: ai.RoleTool, Name: name, Content: content})
}

// SendRequest builds a completion request from the current history plus the
// full tool catalog and dispatches it to the provider. forcedTool forces the
// named tool; empty means automatic tool choice.
//
// On success the reply message is appended to the history and returned: the
// history grows by exactly one message. On failure (retries exhausted or
// malformed response) the history is left exactly as it was.
func (a *Agent) SendRequest(ctx context.Context, forcedTool string) (ai.Message, error) {
	toolChoice := ai.ToolChoiceAuto
	if forcedTool != "" {
		toolChoice = forcedTool
	}

	var tools []ai.ToolDescription
	if a.catalog != nil {
		tools = a.catalog.Descriptions()
	}

	request := ai.ChatRequest{
		Model:       a.cfg.Model,
		Messages:    a.history.Snapshot(),
		Tools:       tools,
		ToolChoice:  toolChoice,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	}

	response, err := a.provider.SendMessage(ctx, request)
	if err != nil {
		return ai.Message{}, err
	}

	a.history.Append(response.Message)
	return response.Message, nil
}

// Chat appends userInput as a user turn and drives the conversation until
// the provider stops requesting tools or the tool-iteration bound is hit.
// Tool execution errors are folded into the conversation as tool messages;
// only provider failures abort the call.
func (a *Agent) Chat(ctx context.Context, userInput string) (ai.Message, error) {
	observer := observability.FromContext(ctx)
	a.AddUserMessage(userInput)

	reply, err := a.SendRequest(ctx, "")
	if err != nil {
		return ai.Message{}, err
	}

	for iteration := 0; len(reply.ToolCalls) > 0 && iteration < a.cfg.MaxToolIterations; iteration++ {
		for _, call := range reply.ToolCalls {
			output := a.executeTool(ctx, call)
			observer.Debug(ctx, "tool executed",
				observability.String(observability.AttrToolName, call.Name),
			)
			a.AddToolResult(call.Name, output)
		}

		reply, err = a.SendRequest(ctx, "")
		if err != nil {
			return ai.Message{}, err
		}
	}

	return reply, nil
}

func (a *Agent) executeTool(ctx context.Context, call ai.ToolCall) string {
	if a.catalog == nil {
		return fmt.Sprintf("tool %q is not available", call.Name)
	}
	output, err := a.catalog.Execute(ctx, call.Name, call.Arguments)
	if err != nil {
		return fmt.Sprintf("tool %q failed: %v", call.Name, err)
	}
	return output
}

// History returns a snapshot copy of the conversation.
func (a *Agent) History() []ai.Message {
	return a.history.Snapshot()
}
