// internal/providers/ollama/provider.go
// Package ollama provides a ChatProvider backed by Ollama-compatible HTTP endpoints.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hinteval/hinteval/internal/appconfig"
	"github.com/hinteval/hinteval/internal/logging"
	"github.com/hinteval/hinteval/internal/providers"
)

// Provider implements the providers.ChatProvider interface using Ollama HTTP APIs.
type Provider struct {
	client  *http.Client
	timeout time.Duration
	debug   bool
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout: timeout,
		debug:   cfg.Debug,
	}
}

// chatResponse defines the structure of a non-streaming /api/chat response.
type chatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done               bool  `json:"done"`
	TotalDuration      int64 `json:"total_duration"`
	LoadDuration       int64 `json:"load_duration"`
	PromptEvalCount    int   `json:"prompt_eval_count"`
	PromptEvalDuration int64 `json:"prompt_eval_duration"`
	EvalCount          int   `json:"eval_count"`
	EvalDuration       int64 `json:"eval_duration"`
}

// EnsureModelReady triggers a lightweight generate request to make sure the model is loaded.
func (p *Provider) EnsureModelReady(ctx context.Context, host appconfig.Host, model string) error {
	payload := map[string]any{
		"model": model,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	logging.LogRequest("EVAL->LLM", host.Name, model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, host.URL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	logging.LogRequest("LLM->EVAL", host.Name, model, respBody)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: /api/generate returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	return nil
}

// Complete issues a single non-streaming chat request and forwards the result
// to the provided callbacks.
func (p *Provider) Complete(ctx context.Context, req providers.CompletionRequest, callbacks providers.CompletionCallbacks) error {
	messages := req.Messages
	if req.SystemPrompt != "" {
		messages = append([]providers.ChatMessage{providers.SystemMessage(req.SystemPrompt)}, messages...)
	}
	if messages == nil {
		messages = []providers.ChatMessage{}
	}

	payload := map[string]any{
		"model":    req.Model,
		"messages": messages,
		"stream":   false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if p.debug {
		if pretty, perr := json.MarshalIndent(payload, "", "  "); perr == nil {
			logging.LogRequest("EVAL->LLM", req.Host.Name, req.Model, pretty)
		}
	} else {
		logging.LogRequest("EVAL->LLM", req.Host.Name, req.Model, body)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, req.Host.URL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	logging.LogRequest("LLM->EVAL", req.Host.Name, req.Model, respBody)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: /api/chat returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return err
	}

	if callbacks.OnContent != nil {
		role := providers.Role(result.Message.Role)
		if role == "" {
			role = providers.RoleAssistant
		}
		if err := callbacks.OnContent(providers.ChatMessage{Role: role, Content: result.Message.Content}); err != nil {
			return err
		}
	}
	if callbacks.OnComplete != nil {
		modelName := result.Model
		if modelName == "" {
			modelName = req.Model
		}
		meta := providers.CompletionMetadata{
			Model:              modelName,
			CreatedAt:          time.Now(),
			Done:               true,
			TotalDuration:      result.TotalDuration,
			LoadDuration:       result.LoadDuration,
			PromptEvalCount:    result.PromptEvalCount,
			PromptEvalDuration: result.PromptEvalDuration,
			EvalCount:          result.EvalCount,
			EvalDuration:       result.EvalDuration,
		}
		if err := callbacks.OnComplete(meta); err != nil {
			return err
		}
	}

	return nil
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error {
	return nil
}
