package observability

import (
	"context"
	"time"
)

// Observer receives structured log events from the core. Implementations
// must be safe for concurrent use: a single Observer is shared by every
// agent in a batch.
type Observer interface {
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// Attribute is a key-value pair attached to a log event.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value}
}

// Error creates an "error" attribute from err's message.
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: "error", Value: ""}
	}
	return Attribute{Key: "error", Value: err.Error()}
}

// Common attribute keys emitted by the core packages. Kept as constants so
// log consumers can filter on stable names.
const (
	AttrProvider     = "llm.provider"
	AttrModel        = "llm.model"
	AttrEndpoint     = "llm.endpoint"
	AttrFinishReason = "llm.finish_reason"
	AttrMessageCount = "request.messages"
	AttrToolCount    = "request.tools"
	AttrAttempt      = "transport.attempt"
	AttrBackoff      = "transport.backoff"
	AttrStatusCode   = "http.status_code"
	AttrURL          = "http.url"
	AttrTaskID       = "batch.task_id"
	AttrPromptIndex  = "batch.prompt_index"
	AttrToolName     = "tool.name"
)
