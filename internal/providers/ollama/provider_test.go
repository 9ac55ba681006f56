// internal/providers/ollama/provider_test.go
package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hinteval/hinteval/internal/appconfig"
	"github.com/hinteval/hinteval/internal/providers"
)

// TestProviderComplete verifies that the provider makes a single non-streaming
// request and correctly processes the response.
func TestProviderComplete(t *testing.T) {
	t.Parallel()

	var capturedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		capturedBody = body
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"model":"test-model","message":{"role":"assistant","content":"Paris"},"done":true,"total_duration":123}`))
	}))
	defer server.Close()

	cfg := &appconfig.Config{TimeoutSeconds: 5}
	provider := New(cfg)

	host := appconfig.Host{Name: "test", URL: server.URL}
	req := providers.CompletionRequest{
		Host:         host,
		Model:        "test-model",
		SystemPrompt: "Answer briefly.",
		Messages: []providers.ChatMessage{
			providers.UserMessage("Capital of France?"),
		},
	}

	var contents []providers.ChatMessage
	var meta providers.CompletionMetadata
	err := provider.Complete(context.Background(), req, providers.CompletionCallbacks{
		OnContent: func(msg providers.ChatMessage) error {
			contents = append(contents, msg)
			return nil
		},
		OnComplete: func(m providers.CompletionMetadata) error {
			meta = m
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if len(contents) != 1 || contents[0].Content != "Paris" {
		t.Fatalf("unexpected contents: %+v", contents)
	}
	if meta.Model != "test-model" || !meta.Done {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	var payload map[string]any
	if err := json.Unmarshal(capturedBody, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if stream, ok := payload["stream"].(bool); !ok || stream {
		t.Fatalf("expected stream=false, got %v", payload["stream"])
	}

	messages, ok := payload["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected 2 messages in payload, got %v", payload["messages"])
	}
	first, ok := messages[0].(map[string]any)
	if !ok || first["role"] != "system" {
		t.Fatalf("expected leading system message, got %v", messages[0])
	}
	last, ok := messages[1].(map[string]any)
	if !ok || last["role"] != "user" {
		t.Fatalf("expected trailing user message, got %v", messages[1])
	}
}

// TestProviderCompleteErrorStatus verifies non-200 responses surface as errors.
func TestProviderCompleteErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate limited`))
	}))
	defer server.Close()

	cfg := &appconfig.Config{TimeoutSeconds: 5}
	provider := New(cfg)

	req := providers.CompletionRequest{
		Host:     appconfig.Host{Name: "test", URL: server.URL},
		Model:    "test-model",
		Messages: []providers.ChatMessage{providers.UserMessage("q")},
	}

	err := provider.Complete(context.Background(), req, providers.CompletionCallbacks{})
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

// TestEnsureModelReady verifies the lightweight generate call.
func TestEnsureModelReady(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"done":true}`))
	}))
	defer server.Close()

	cfg := &appconfig.Config{TimeoutSeconds: 5}
	provider := New(cfg)

	host := appconfig.Host{Name: "test", URL: server.URL}
	if err := provider.EnsureModelReady(context.Background(), host, "test-model"); err != nil {
		t.Fatalf("EnsureModelReady returned error: %v", err)
	}
}
