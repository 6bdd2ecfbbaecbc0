// Package tool provides typed, callable tools and the Catalog that
// advertises them to LLM providers. Tools execute out-of-band from the
// dispatch core: the agent forwards a provider's tool-call request to the
// catalog and appends the textual result back into the conversation.
//
// Built-in tools live in the subpackages fsops (file operations), shell
// (command execution and code evaluation), and webfetch (HTTP fetch with
// HTML-to-Markdown conversion).
package tool
