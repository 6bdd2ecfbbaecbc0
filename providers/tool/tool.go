package tool

import (
	"context"
	"encoding/json"

	"github.com/parley-ai/parley/internal/jsonschema"
	"github.com/parley-ai/parley/internal/utils"
	"github.com/parley-ai/parley/providers/ai"
)

// Tool binds a name and description to a strongly-typed Go function and
// derives the JSON parameter schema for its input type via reflection.
// Use [NewTool] to construct one; store it behind [GenericTool] to dispatch
// without knowing the concrete type parameters.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
}

// GenericTool is the provider-agnostic interface for all tools.
type GenericTool interface {
	// Info returns the metadata advertised to providers.
	Info() ai.ToolDescription

	// Call invokes the tool with a JSON-encoded input string and returns a
	// JSON-encoded output string. Returns an error if parsing or execution
	// fails.
	Call(ctx context.Context, inputJSON string) (string, error)
}

// NewTool constructs a Tool with the given name, description, and handler.
// The parameter schema for I is derived automatically.
func NewTool[I, O any](name, description string, function func(ctx context.Context, input I) (O, error)) *Tool[I, O] {
	return &Tool[I, O]{
		Name:        name,
		Description: description,
		Parameters:  jsonschema.Generate[I](),
		Function:    function,
	}
}

// Info returns the ai.ToolDescription used to advertise this tool.
func (t *Tool[I, O]) Info() ai.ToolDescription {
	return ai.ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call deserializes inputJSON into I (leniently, repairing broken LLM JSON),
// executes the function, and returns the output serialized as JSON.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	input, err := utils.ParseJSONAs[I](inputJSON)
	if err != nil {
		return "", err
	}

	output, err := t.Function(ctx, input)
	if err != nil {
		return "", err
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		return "", err
	}

	return string(outputBytes), nil
}
