// Package array provides the slice-backed Conversation implementation.
package array

import (
	"github.com/parley-ai/parley/providers/ai"
	"github.com/parley-ai/parley/providers/memory"
)

// History is an in-process, slice-backed conversation. It performs no
// locking: a History belongs to a single agent and is never shared.
type History struct {
	messages []ai.Message
}

var _ memory.Conversation = (*History)(nil)

// New creates a History seeded with the given system message. The system
// message is always the first entry and is never removed.
func New(systemMessage ai.Message) *History {
	return &History{messages: []ai.Message{systemMessage}}
}

func (h *History) Append(message ai.Message) {
	h.messages = append(h.messages, message)
}

func (h *History) Snapshot() []ai.Message {
	snapshot := make([]ai.Message, len(h.messages))
	copy(snapshot, h.messages)
	return snapshot
}

func (h *History) First() ai.Message {
	return h.messages[0]
}

func (h *History) Len() int {
	return len(h.messages)
}
