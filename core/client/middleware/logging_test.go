package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/tangshi/providers/ai"
)

// captureLogger returns a JSON slog logger writing into buf.
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// decodeLogLines parses each JSON log line in buf.
func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}

	return entries
}

func respondWith(response *ai.ChatResponse, err error) func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
	return func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
		return response, err
	}
}

var testRequest = ai.ChatRequest{
	Model:        "gpt-3.5-turbo",
	SystemPrompt: "你是唐代诗人",
	Messages:     []ai.Message{{Role: ai.RoleUser, Content: "作一首七言绝句"}},
}

// TestLoggingMiddleware_Success verifies the request and completion entries.
func TestLoggingMiddleware_Success(t *testing.T) {
	var buf bytes.Buffer
	response := &ai.ChatResponse{
		Model:        "gpt-3.5-turbo",
		Content:      "两个黄鹂鸣翠柳",
		FinishReason: "stop",
		Usage:        &ai.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
	}

	chain := NewLoggingMiddleware(captureLogger(&buf), LogLevelStandard)(respondWith(response, nil))
	if _, err := chain(context.Background(), testRequest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := decodeLogLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d: %s", len(entries), buf.String())
	}

	if entries[0]["msg"] != "llm send" || entries[0]["message_count"] != float64(1) {
		t.Errorf("unexpected request entry: %v", entries[0])
	}
	if _, ok := entries[0]["prompt"]; ok {
		t.Errorf("standard level must not log the prompt: %v", entries[0])
	}

	done := entries[1]
	if done["msg"] != "llm send completed" || done["level"] != "INFO" {
		t.Errorf("unexpected completion entry: %v", done)
	}
	if done["total_tokens"] != float64(30) || done["finish_reason"] != "stop" {
		t.Errorf("completion entry missing usage or finish reason: %v", done)
	}
}

// TestLoggingMiddleware_Verbose verifies that prompt and content are logged.
func TestLoggingMiddleware_Verbose(t *testing.T) {
	var buf bytes.Buffer
	response := &ai.ChatResponse{Content: "两个黄鹂鸣翠柳", FinishReason: "stop"}

	chain := NewLoggingMiddleware(captureLogger(&buf), LogLevelVerbose)(respondWith(response, nil))
	if _, err := chain(context.Background(), testRequest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := decodeLogLines(t, &buf)
	if entries[0]["prompt"] != "作一首七言绝句" || entries[0]["system_prompt"] != "你是唐代诗人" {
		t.Errorf("verbose request entry missing prompts: %v", entries[0])
	}
	if entries[1]["content"] != "两个黄鹂鸣翠柳" {
		t.Errorf("verbose completion entry missing content: %v", entries[1])
	}
}

// TestLoggingMiddleware_Minimal verifies that minimal level omits detail.
func TestLoggingMiddleware_Minimal(t *testing.T) {
	var buf bytes.Buffer
	chain := NewLoggingMiddleware(captureLogger(&buf), LogLevelMinimal)(respondWith(&ai.ChatResponse{FinishReason: "stop"}, nil))
	if _, err := chain(context.Background(), testRequest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entry := range decodeLogLines(t, &buf) {
		for _, key := range []string{"message_count", "finish_reason", "prompt", "content"} {
			if _, ok := entry[key]; ok {
				t.Errorf("minimal level logged %q: %v", key, entry)
			}
		}
	}
}

// TestLoggingMiddleware_Error verifies the failure entry.
func TestLoggingMiddleware_Error(t *testing.T) {
	var buf bytes.Buffer
	providerErr := errors.New("connection reset")

	chain := NewLoggingMiddleware(captureLogger(&buf), LogLevelStandard)(respondWith(nil, providerErr))
	if _, err := chain(context.Background(), testRequest); !errors.Is(err, providerErr) {
		t.Fatalf("expected provider error, got %v", err)
	}

	entries := decodeLogLines(t, &buf)
	last := entries[len(entries)-1]
	if last["msg"] != "llm send failed" || last["level"] != "ERROR" || last["error"] != "connection reset" {
		t.Errorf("unexpected failure entry: %v", last)
	}
}

// TestLoggingMiddleware_Truncated verifies that a length-limited response is
// logged as a warning.
func TestLoggingMiddleware_Truncated(t *testing.T) {
	var buf bytes.Buffer
	chain := NewLoggingMiddleware(captureLogger(&buf), LogLevelStandard)(respondWith(&ai.ChatResponse{FinishReason: "length"}, nil))
	if _, err := chain(context.Background(), testRequest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := decodeLogLines(t, &buf)
	last := entries[len(entries)-1]
	if last["level"] != "WARN" || last["finish_reason"] != "length" {
		t.Errorf("unexpected truncation entry: %v", last)
	}
}
