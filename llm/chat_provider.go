package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Groq-hosted OpenAI-compatible chat-completions
// endpoint the original app talked to.
const DefaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"

// ChatProvider implements Provider against any OpenAI-compatible
// chat-completions endpoint.
type ChatProvider struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	debug   bool
}

// NewChatProvider creates a new ChatProvider. An empty baseURL selects the
// default Groq endpoint.
func NewChatProvider(apiKey, baseURL string, timeout time.Duration, debug bool) *ChatProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChatProvider{apiKey: apiKey, baseURL: baseURL, timeout: timeout, debug: debug}
}

// requestPayload defines the structure for the chat-completions request.
type requestPayload struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// responsePayload defines the structure for the chat-completions response.
type responsePayload struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Complete sends the transcript to the endpoint and returns the content of
// the first choice.
func (p *ChatProvider) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("API key is not set")
	}
	if opts.Model == "" {
		return "", fmt.Errorf("model name is not set")
	}

	payload := requestPayload{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: p.timeout}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "context deadline exceeded") || strings.Contains(err.Error(), "Client.Timeout exceeded") {
			return "", fmt.Errorf("completion request timed out after %v: %w", p.timeout, err)
		}
		return "", fmt.Errorf("failed to call completion endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if p.debug {
		fmt.Printf("[LLM] %s in %v (status %s, bytes %d)\n", opts.Model, time.Since(start), resp.Status, len(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion endpoint error (%s): %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var parsed responsePayload
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
