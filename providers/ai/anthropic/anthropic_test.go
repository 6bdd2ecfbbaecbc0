package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parley-ai/parley/internal/jsonschema"
	"github.com/parley-ai/parley/providers/ai"
)

// TestRequestFromGeneric verifies the transcript flattening: every history
// turn becomes one "[role] content" line joined by newlines.
func TestRequestFromGeneric(t *testing.T) {
	wire := requestFromGeneric(ai.ChatRequest{
		Model: "claude-2",
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: "be brief"},
			{Role: ai.RoleUser, Content: "hello"},
			{Role: ai.RoleAssistant, Content: "hi"},
		},
		MaxTokens: 512,
	})

	want := "[system] be brief\n[user] hello\n[assistant] hi"
	if wire.Prompt != want {
		t.Errorf("unexpected prompt:\n got %q\nwant %q", wire.Prompt, want)
	}
	if wire.Model != "claude-2" {
		t.Errorf("unexpected model %q", wire.Model)
	}
	if wire.MaxTokensToSample != 512 {
		t.Errorf("expected max_tokens_to_sample 512, got %d", wire.MaxTokensToSample)
	}
}

// TestRequestFromGeneric_DropsTools verifies the wire body never carries
// tool descriptors even when the request has them.
func TestRequestFromGeneric_DropsTools(t *testing.T) {
	wire := requestFromGeneric(ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
		Tools: []ai.ToolDescription{
			{Name: "read_file", Parameters: &jsonschema.Schema{Type: "object"}},
		},
		ToolChoice: ai.ToolChoiceAuto,
	})

	raw, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("marshaling wire request: %v", err)
	}
	body := string(raw)
	for _, forbidden := range []string{"tools", "functions", "tool_choice"} {
		if strings.Contains(body, forbidden) {
			t.Errorf("wire body must not carry %q: %s", forbidden, body)
		}
	}
}

// TestResponseToGeneric verifies the completion text becomes an assistant
// message with a stop finish reason.
func TestResponseToGeneric(t *testing.T) {
	text := "hello there"
	response, err := responseToGeneric(completeResponse{Completion: &text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Message.Role != ai.RoleAssistant || response.Message.Content != "hello there" {
		t.Errorf("unexpected message: %+v", response.Message)
	}
	if response.FinishReason != ai.FinishStop {
		t.Errorf("expected stop finish, got %q", response.FinishReason)
	}
}

// TestResponseToGeneric_MissingCompletion verifies that an absent completion
// field yields ErrMalformedResponse.
func TestResponseToGeneric_MissingCompletion(t *testing.T) {
	_, err := responseToGeneric(completeResponse{})
	if !errors.Is(err, ai.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

// TestSendMessage verifies the endpoint path, bearer authentication, and
// response conversion against a stub server.
func TestSendMessage(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"completion":"flattened reply"}`))
	}))
	defer server.Close()

	provider := New().WithAPIKey("sk-ant").WithBaseURL(server.URL)

	response, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer sk-ant" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotPath != "/v1/complete" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if response.Message.Content != "flattened reply" {
		t.Errorf("unexpected response: %+v", response)
	}
	if !provider.IsStopMessage(response) {
		t.Error("prose completions must always be terminal")
	}
}

// TestSendMessage_MissingAPIKey verifies the fail-fast credential check.
func TestSendMessage_MissingAPIKey(t *testing.T) {
	_, err := New().SendMessage(context.Background(), ai.ChatRequest{})
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}
