// internal/providers/provider.go

// Package providers defines the interfaces for interacting with chat
// completion endpoints. It provides a common abstraction for sending a
// message sequence and receiving the completion, regardless of the underlying
// endpoint implementation (e.g., Ollama, OpenAI-compatible).
package providers

import (
	"context"
	"time"

	"github.com/hinteval/hinteval/internal/appconfig"
)

// Role identifies the author of a chat message. Construction through the
// typed constants keeps malformed role strings from ever reaching the
// completion endpoint.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// CompletionMetadata describes a finished completion, including the timing
// and token counts endpoints report.
type CompletionMetadata struct {
	Model              string
	CreatedAt          time.Time
	Done               bool
	TotalDuration      int64
	LoadDuration       int64
	PromptEvalCount    int
	PromptEvalDuration int64
	EvalCount          int
	EvalDuration       int64
}

// CompletionRequest encapsulates one completion call: the target host and
// model, an optional system prompt, and the ordered exemplar/target messages.
type CompletionRequest struct {
	Host         appconfig.Host
	Model        string
	SystemPrompt string
	Messages     []ChatMessage
}

// CompletionCallbacks defines the callbacks invoked while a completion is
// processed. OnContent receives the assistant's text, OnComplete the metadata.
type CompletionCallbacks struct {
	OnContent  func(ChatMessage) error
	OnComplete func(CompletionMetadata) error
}

// ChatProvider is the interface that all completion endpoints must implement.
type ChatProvider interface {
	// EnsureModelReady checks if a model is ready to be used and loads it if necessary.
	EnsureModelReady(ctx context.Context, host appconfig.Host, model string) error
	// Complete sends the request to the endpoint and forwards the result to the callbacks.
	Complete(ctx context.Context, req CompletionRequest, callbacks CompletionCallbacks) error
	// Close cleans up any resources used by the provider.
	Close() error
}
