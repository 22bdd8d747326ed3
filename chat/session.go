// Package chat maintains the advice-session transcript sent in full on each
// turn to the text-completion endpoint. It never touches the task store.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/josephgoksu/goalmate/llm"
)

// FallbackMessage is appended as an assistant turn when a request fails, so
// the user's turn is never lost.
const FallbackMessage = "Sorry, there was an error processing your request. Please try again."

// ErrEmptyInput is returned when a turn is submitted with no content.
var ErrEmptyInput = errors.New("chat input must not be empty")

// Session holds a growing message transcript. The full history (persona plus
// every prior turn) is sent on each request. Transcripts survive restarts
// via a JSON file next to the task data.
type Session struct {
	id           string
	provider     llm.Provider
	systemPrompt string
	opts         llm.CompletionOptions
	messages     []llm.Message
	filePath     string // empty disables persistence
}

// transcriptFile is the persisted transcript layout.
type transcriptFile struct {
	SessionID string        `json:"sessionId"`
	Messages  []llm.Message `json:"messages"`
}

// NewSession creates a session, restoring any saved transcript from
// filePath. A missing or unparseable transcript starts an empty session;
// that is never an error.
func NewSession(provider llm.Provider, systemPrompt string, opts llm.CompletionOptions, filePath string) *Session {
	s := &Session{
		id:           uuid.NewString(),
		provider:     provider,
		systemPrompt: systemPrompt,
		opts:         opts,
		filePath:     filePath,
	}
	s.load()
	return s
}

// ID returns the session identifier recorded in the transcript file.
func (s *Session) ID() string {
	return s.id
}

// Messages returns a snapshot of the transcript, excluding the persona.
func (s *Session) Messages() []llm.Message {
	out := make([]llm.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send submits one user turn. On success the assistant reply is appended and
// returned. On failure the user turn is kept, a single fallback assistant
// message is appended, and that fallback is returned alongside the error.
func (s *Session) Send(ctx context.Context, input string) (llm.Message, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return llm.Message{}, ErrEmptyInput
	}

	userMessage := llm.Message{Role: "user", Content: input}
	s.messages = append(s.messages, userMessage)

	full := make([]llm.Message, 0, len(s.messages)+1)
	full = append(full, llm.Message{Role: "system", Content: s.systemPrompt})
	full = append(full, s.messages...)

	content, err := s.provider.Complete(ctx, full, s.opts)
	if err != nil {
		fallback := llm.Message{Role: "assistant", Content: FallbackMessage}
		s.messages = append(s.messages, fallback)
		s.persist()
		return fallback, fmt.Errorf("advice request failed: %w", err)
	}

	reply := llm.Message{Role: "assistant", Content: content}
	s.messages = append(s.messages, reply)
	s.persist()
	return reply, nil
}

// Reset discards the transcript and starts a fresh session.
func (s *Session) Reset() {
	s.messages = nil
	s.id = uuid.NewString()
	if s.filePath != "" {
		_ = os.Remove(s.filePath)
	}
}

// load restores a saved transcript. Fails soft to an empty session.
func (s *Session) load() {
	if s.filePath == "" {
		return
	}
	data, err := os.ReadFile(s.filePath)
	if err != nil || len(data) == 0 {
		return
	}
	var saved transcriptFile
	if err := json.Unmarshal(data, &saved); err != nil {
		return
	}
	if saved.SessionID != "" {
		s.id = saved.SessionID
	}
	s.messages = saved.Messages
}

// persist writes the transcript through a temp file and rename. A failed
// write costs history, not the running session.
func (s *Session) persist() {
	if s.filePath == "" {
		return
	}
	saved := transcriptFile{SessionID: s.id, Messages: s.messages}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return
	}
	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return
		}
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, s.filePath)
}
