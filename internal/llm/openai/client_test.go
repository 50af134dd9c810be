package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"career-backend/internal/llm"
)

func TestGenerateSendsFixedModelAndTwoMessages(t *testing.T) {
	var mu sync.Mutex
	var got map[string]any
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		got = payload
		auth = r.Header.Get("Authorization")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}],"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "", WithBaseURL(server.URL+"/"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	text, err := client.Generate(context.Background(), llm.Prompt{System: "sys", User: "usr"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "hello" {
		t.Fatalf("expected hello, got %q", text)
	}

	mu.Lock()
	defer mu.Unlock()
	if auth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if got["model"] != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %v", got["model"])
	}
	if temp, ok := got["temperature"].(float64); !ok || temp < 0.69 || temp > 0.71 {
		t.Fatalf("expected temperature 0.7, got %v", got["temperature"])
	}
	if _, ok := got["response_format"]; ok {
		t.Fatalf("response_format must not be sent")
	}
	msgs, ok := got["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected two messages, got %v", got["messages"])
	}
	first := msgs[0].(map[string]any)
	second := msgs[1].(map[string]any)
	if first["role"] != "system" || first["content"] != "sys" {
		t.Fatalf("unexpected system message %v", first)
	}
	if second["role"] != "user" || second["content"] != "usr" {
		t.Fatalf("unexpected user message %v", second)
	}
}

func TestGenerateUpstreamErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "provider message", status: http.StatusUnauthorized, body: `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, wantMessage: "Incorrect API key provided"},
		{name: "status text fallback", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMessage: "OpenAI API error: Bad Gateway"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient("k", "gpt-4o-mini", WithBaseURL(server.URL))
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			_, err = client.Generate(context.Background(), llm.Prompt{System: "s", User: "u"})
			var upstream *llm.UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upstream.Status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, upstream.Status)
			}
			if upstream.Message != tt.wantMessage {
				t.Fatalf("expected message %q, got %q", tt.wantMessage, upstream.Message)
			}
		})
	}
}

func TestGenerateMissingChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, _ := NewClient("k", "gpt-4o-mini", WithBaseURL(server.URL))
	if _, err := client.Generate(context.Background(), llm.Prompt{}); !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestGenerateReturnsBlankContentUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	}))
	defer server.Close()

	client, _ := NewClient("k", "gpt-4o-mini", WithBaseURL(server.URL))
	text, err := client.Generate(context.Background(), llm.Prompt{System: "s", User: "u"})
	if err != nil {
		t.Fatalf("blank content is a reply, got %v", err)
	}
	if text != "   " {
		t.Fatalf("expected content unchanged, got %q", text)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("  ", "gpt-4o-mini"); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
