package google

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

// TestRequestFromGeneric verifies the {author, content} rendering and that
// tool descriptors and generation parameters never reach the wire.
func TestRequestFromGeneric(t *testing.T) {
	wire := requestFromGeneric(ai.ChatRequest{
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: "hello"},
			{Role: ai.RoleAssistant, Content: "hi"},
		},
		Tools: []ai.ToolDescription{
			{Name: "read_file", Parameters: &jsonschema.Schema{Type: "object"}},
		},
		ToolChoice:  ai.ToolChoiceAuto,
		MaxTokens:   512,
		Temperature: 0.7,
	})

	if len(wire.Messages) != 2 {
		t.Fatalf("expected 2 wire messages, got %d", len(wire.Messages))
	}
	if wire.Messages[0].Author != "user" || wire.Messages[0].Content != "hello" {
		t.Errorf("unexpected first message: %+v", wire.Messages[0])
	}

	raw, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("marshaling wire request: %v", err)
	}
	body := string(raw)
	for _, forbidden := range []string{"tools", "functions", "max_tokens", "temperature"} {
		if strings.Contains(body, forbidden) {
			t.Errorf("wire body must not carry %q: %s", forbidden, body)
		}
	}
}

// TestResponseToGeneric verifies the first candidate becomes an assistant
// message and that an empty candidate list yields ErrMalformedResponse.
func TestResponseToGeneric(t *testing.T) {
	response, err := responseToGeneric(generateMessageResponse{
		Candidates: []wireMessage{
			{Author: "1", Content: "first"},
			{Author: "1", Content: "second"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Message.Role != ai.RoleAssistant || response.Message.Content != "first" {
		t.Errorf("unexpected message: %+v", response.Message)
	}
	if response.FinishReason != ai.FinishStop {
		t.Errorf("expected stop finish, got %q", response.FinishReason)
	}

	_, err = responseToGeneric(generateMessageResponse{})
	if !errors.Is(err, ai.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

// TestSendMessage verifies query-parameter authentication: the key rides on
// the URL, the Authorization header stays empty, and the model is part of
// the path.
func TestSendMessage(t *testing.T) {
	var gotAuth, gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(`{"candidates":[{"author":"1","content":"structured reply"}]}`))
	}))
	defer server.Close()

	provider := New().WithAPIKey("g-key").WithBaseURL(server.URL)

	response, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
	if gotKey != "g-key" {
		t.Errorf("expected key query parameter, got %q", gotKey)
	}
	if want := "/models/" + DefaultModel + ":generateMessage"; gotPath != want {
		t.Errorf("unexpected path %q, want %q", gotPath, want)
	}
	if response.Message.Content != "structured reply" {
		t.Errorf("unexpected response: %+v", response)
	}
	if !provider.IsStopMessage(response) {
		t.Error("structured-message replies must always be terminal")
	}
}

// TestSendMessage_MissingAPIKey verifies the fail-fast credential check.
func TestSendMessage_MissingAPIKey(t *testing.T) {
	_, err := New().SendMessage(context.Background(), ai.ChatRequest{})
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}
