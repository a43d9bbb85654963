package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-analysis/internal/infra/anthropic"
)

func TestClaudeClient_Analyze(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		System      string  `json:"system"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Header.Get("x-api-key") != "test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)

		response := map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Summary: greeting"},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", 0.1, 500, server.URL)

	result, err := client.Analyze(context.Background(), "hello world", "Summarize.")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if result != "Summary: greeting" {
		t.Errorf("result: got %q, want Summary: greeting", result)
	}
	if got.Model != "claude-test" {
		t.Errorf("model: got %s, want claude-test", got.Model)
	}
	if got.System != "Summarize." {
		t.Errorf("system: got %q", got.System)
	}
	if got.Temperature != 0.1 || got.MaxTokens != 500 {
		t.Errorf("sampling: got temperature=%v max_tokens=%d", got.Temperature, got.MaxTokens)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hello world" {
		t.Errorf("messages: got %+v", got.Messages)
	}
}

func TestClaudeClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"type":"error","error":{"type":"overloaded_error"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "", 0.1, 500, server.URL)

	_, err := client.Analyze(context.Background(), "hello", "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should include status code: %v", err)
	}
}

func TestClaudeClient_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "", 0.1, 500, server.URL)

	if _, err := client.Analyze(context.Background(), "hello", "prompt"); err == nil {
		t.Error("expected error for empty content")
	}
}
