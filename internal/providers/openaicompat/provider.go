// internal/providers/openaicompat/provider.go
// Package openaicompat provides a ChatProvider for OpenAI-compatible HTTP APIs
// such as llama.cpp servers, vLLM, or hosted endpoints requiring an API key.
package openaicompat

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

// Provider implements the providers.ChatProvider interface against
// /v1/chat/completions.
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

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// EnsureModelReady confirms the endpoint lists the model. Endpoints without a
// /v1/models route are assumed to auto-load on first request.
func (p *Provider) EnsureModelReady(ctx context.Context, host appconfig.Host, model string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := host.URL + "/v1/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	p.authorize(req, host)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusMethodNotAllowed {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	logging.LogRequest("LLM->EVAL", host.Name, model, body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openaicompat: /v1/models returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var models modelsResponse
	if err := json.Unmarshal(body, &models); err != nil {
		return err
	}
	for _, m := range models.Data {
		if m.ID == model {
			return nil
		}
	}
	return fmt.Errorf("openaicompat: model %q not available on host %s", model, host.Name)
}

// Complete sends a single chat completion request and forwards the first
// choice to the provided callbacks.
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
	logging.LogRequest("EVAL->LLM", req.Host.Name, req.Model, body)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := req.Host.URL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	p.authorize(httpReq, req.Host)

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
		return fmt.Errorf("openaicompat: /v1/chat/completions returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return err
	}
	if len(parsed.Choices) == 0 {
		return providers.ErrNoChoices
	}

	choice := parsed.Choices[0]
	role := providers.Role(choice.Message.Role)
	if role == "" {
		role = providers.RoleAssistant
	}
	if callbacks.OnContent != nil {
		if err := callbacks.OnContent(providers.ChatMessage{Role: role, Content: choice.Message.Content}); err != nil {
			return err
		}
	}
	if callbacks.OnComplete != nil {
		modelName := parsed.Model
		if modelName == "" {
			modelName = req.Model
		}
		meta := providers.CompletionMetadata{
			Model:           modelName,
			CreatedAt:       time.Now(),
			Done:            true,
			PromptEvalCount: parsed.Usage.PromptTokens,
			EvalCount:       parsed.Usage.CompletionTokens,
		}
		if err := callbacks.OnComplete(meta); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) authorize(req *http.Request, host appconfig.Host) {
	if key := strings.TrimSpace(host.APIKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error {
	return nil
}
