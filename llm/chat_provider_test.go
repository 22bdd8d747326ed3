package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func completionServer(t *testing.T, status int, body string, capture *http.Request, captureBody *[]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = *r
		}
		if captureBody != nil {
			data, _ := io.ReadAll(r.Body)
			*captureBody = data
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCompleteSendsExpectedRequest(t *testing.T) {
	var gotReq http.Request
	var gotBody []byte
	server := completionServer(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`,
		&gotReq, &gotBody)

	p := NewChatProvider("test-key", server.URL, 5*time.Second, false)
	messages := []Message{
		{Role: "system", Content: "persona"},
		{Role: "user", Content: "hi"},
	}
	content, err := p.Complete(t.Context(), messages, CompletionOptions{
		Model:       "mixtral-8x7b-32768",
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != "hello" {
		t.Errorf("content = %q, want %q", content, "hello")
	}

	if gotReq.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", gotReq.Method)
	}
	if auth := gotReq.Header.Get("Authorization"); auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if ct := gotReq.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if payload["model"] != "mixtral-8x7b-32768" {
		t.Errorf("model = %v", payload["model"])
	}
	if payload["temperature"] != 0.7 {
		t.Errorf("temperature = %v", payload["temperature"])
	}
	if payload["max_tokens"] != float64(1024) {
		t.Errorf("max_tokens = %v", payload["max_tokens"])
	}
	if n := len(payload["messages"].([]interface{})); n != 2 {
		t.Errorf("messages length = %d, want 2", n)
	}
}

func TestCompleteOmitsZeroMaxTokens(t *testing.T) {
	var gotBody []byte
	server := completionServer(t, http.StatusOK,
		`{"choices":[{"message":{"content":"ok"}}]}`, nil, &gotBody)

	p := NewChatProvider("k", server.URL, 5*time.Second, false)
	if _, err := p.Complete(t.Context(), []Message{{Role: "user", Content: "x"}}, CompletionOptions{Model: "m", Temperature: 0.2}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if strings.Contains(string(gotBody), "max_tokens") {
		t.Errorf("max_tokens should be omitted when zero: %s", gotBody)
	}
}

func TestCompleteNon2xxIsError(t *testing.T) {
	server := completionServer(t, http.StatusTooManyRequests, `{"error":"rate limited"}`, nil, nil)

	p := NewChatProvider("k", server.URL, 5*time.Second, false)
	_, err := p.Complete(t.Context(), []Message{{Role: "user", Content: "x"}}, CompletionOptions{Model: "m"})
	if err == nil {
		t.Fatal("expected an error for non-2xx status")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error should carry the response body: %v", err)
	}
}

func TestCompleteMalformedBodyIsError(t *testing.T) {
	server := completionServer(t, http.StatusOK, `not json at all`, nil, nil)

	p := NewChatProvider("k", server.URL, 5*time.Second, false)
	if _, err := p.Complete(t.Context(), []Message{{Role: "user", Content: "x"}}, CompletionOptions{Model: "m"}); err == nil {
		t.Fatal("expected an error for a malformed body")
	}
}

func TestCompleteEmptyChoicesIsError(t *testing.T) {
	server := completionServer(t, http.StatusOK, `{"choices":[]}`, nil, nil)

	p := NewChatProvider("k", server.URL, 5*time.Second, false)
	if _, err := p.Complete(t.Context(), []Message{{Role: "user", Content: "x"}}, CompletionOptions{Model: "m"}); err == nil {
		t.Fatal("expected an error for empty choices")
	}
}

func TestCompleteRequiresKeyAndModel(t *testing.T) {
	server := completionServer(t, http.StatusOK, `{"choices":[{"message":{"content":"ok"}}]}`, nil, nil)

	noKey := NewChatProvider("", server.URL, 5*time.Second, false)
	if _, err := noKey.Complete(t.Context(), nil, CompletionOptions{Model: "m"}); err == nil {
		t.Error("expected an error without an API key")
	}

	noModel := NewChatProvider("k", server.URL, 5*time.Second, false)
	if _, err := noModel.Complete(t.Context(), nil, CompletionOptions{}); err == nil {
		t.Error("expected an error without a model name")
	}
}
