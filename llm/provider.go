package llm

import "context"

// Message is a single turn in a chat-completion conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// CompletionOptions carries per-request model parameters.
type CompletionOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider defines the interface for a hosted text-completion endpoint.
// Both the command interpreter and the advice chat speak through it, so
// tests can substitute a canned implementation.
type Provider interface {
	// Complete sends the full message transcript and returns the content of
	// the first choice. Network failures, non-2xx responses and malformed
	// bodies are returned as errors; callers treat them as recoverable.
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}
