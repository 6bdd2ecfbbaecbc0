package array

import (
	"testing"

	"github.com/parley-ai/parley/providers/ai"
)

// TestHistory_SeededWithSystemMessage verifies the fixed opening turn.
func TestHistory_SeededWithSystemMessage(t *testing.T) {
	h := New(ai.Message{Role: ai.RoleSystem, Content: "you are helpful"})

	if h.Len() != 1 {
		t.Fatalf("expected 1 message, got %d", h.Len())
	}
	first := h.First()
	if first.Role != ai.RoleSystem || first.Content != "you are helpful" {
		t.Errorf("unexpected first message: %+v", first)
	}
}

// TestHistory_AppendPreservesOrder verifies insertion order equals read
// order.
func TestHistory_AppendPreservesOrder(t *testing.T) {
	h := New(ai.Message{Role: ai.RoleSystem, Content: "sys"})
	h.Append(ai.Message{Role: ai.RoleUser, Content: "question"})
	h.Append(ai.Message{Role: ai.RoleAssistant, Content: "answer"})

	snapshot := h.Snapshot()
	wantRoles := []ai.MessageRole{ai.RoleSystem, ai.RoleUser, ai.RoleAssistant}
	if len(snapshot) != len(wantRoles) {
		t.Fatalf("expected %d messages, got %d", len(wantRoles), len(snapshot))
	}
	for i, role := range wantRoles {
		if snapshot[i].Role != role {
			t.Errorf("position %d: expected role %s, got %s", i, role, snapshot[i].Role)
		}
	}
}

// TestHistory_SnapshotIsDetached verifies that appends after Snapshot do not
// leak into the copy, so an in-flight request stays stable.
func TestHistory_SnapshotIsDetached(t *testing.T) {
	h := New(ai.Message{Role: ai.RoleSystem, Content: "sys"})
	snapshot := h.Snapshot()

	h.Append(ai.Message{Role: ai.RoleUser, Content: "later"})

	if len(snapshot) != 1 {
		t.Fatalf("snapshot grew after append: %d messages", len(snapshot))
	}

	// Mutating the snapshot must not touch the history either.
	snapshot[0].Content = "tampered"
	if h.First().Content != "sys" {
		t.Error("mutating a snapshot modified the history")
	}
}
