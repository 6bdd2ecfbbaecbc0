// Package memory defines the conversation-history contract. A history is
// append-only within an agent's lifetime: messages are added, never edited
// or removed, and insertion order is the order providers read the prompt in.
package memory

import "github.com/parley-ai/parley/providers/ai"

// Conversation is an ordered, append-only message history. A Conversation is
// owned by exactly one agent and must never be shared across concurrently
// running agents; isolation comes from construction, not from locking.
type Conversation interface {
	// Append adds one message to the end of the history. It always succeeds.
	Append(message ai.Message)

	// Snapshot returns a copy of the history. The copy is detached: appends
	// made after the call do not affect it, so a request built from a
	// snapshot is stable while in flight.
	Snapshot() []ai.Message

	// First returns the fixed opening message (the system turn).
	First() ai.Message

	// Len returns the number of messages in the history.
	Len() int
}
