// Package ai defines the provider-agnostic conversation model and the
// Provider contract shared by every LLM backend. Concrete backends live in
// the subpackages openai (completions-style), anthropic (prose completion),
// ollama (local daemon), and google (structured messages); each translates
// ChatRequest/ChatResponse to and from its own wire shape.
package ai
