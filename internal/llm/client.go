package llm

import "context"

// Client is the language-model provider surface the chat service depends on.
// It is constructed once at application startup and injected; nothing in the
// codebase holds a package-level instance.
type Client interface {
	// Complete sends a system+user message pair and returns the response
	// content as plain text.
	Complete(ctx context.Context, system, user string) (string, error)
}
