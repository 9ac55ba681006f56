// internal/generator/generator.go
// Package generator turns one instance into a model answer: it assembles the
// system prompt, sampled exemplars, and target prompt into a message sequence,
// invokes the completion endpoint, and extracts the answer text.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hinteval/hinteval/internal/appconfig"
	"github.com/hinteval/hinteval/internal/dataset"
	"github.com/hinteval/hinteval/internal/logging"
	"github.com/hinteval/hinteval/internal/prompt"
	"github.com/hinteval/hinteval/internal/providers"
	"github.com/hinteval/hinteval/internal/sampler"
)

// ErrEmptyCompletion marks a completion whose text was empty after trimming.
var ErrEmptyCompletion = errors.New("completion contained no answer text")

// RemoteError wraps a failure of the completion endpoint: network, auth,
// rate limiting, or timeout.
type RemoteError struct {
	Host  string
	Model string
	Err   error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("completion call to %s (%s) failed: %v", e.Host, e.Model, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Options carries the per-run settings the generator needs. Set once before a
// run, read-only during it.
type Options struct {
	NumShots      int
	SystemPrompt  string
	ExcludeTarget bool
	RetryAttempts int
	RetryBackoff  time.Duration
}

// Generator produces an answer for one target instance per Generate call.
type Generator struct {
	provider providers.ChatProvider
	sampler  *sampler.Sampler
	opts     Options
}

// New constructs a Generator around a provider and an exemplar sampler.
func New(provider providers.ChatProvider, s *sampler.Sampler, opts Options) *Generator {
	return &Generator{provider: provider, sampler: s, opts: opts}
}

// Generate answers the instance at targetIdx. Exemplars are re-sampled fresh
// for every call; the returned string is the first completion choice with
// surrounding whitespace trimmed.
func (g *Generator) Generate(ctx context.Context, host appconfig.Host, pool dataset.Pool, targetIdx int) (string, error) {
	target := pool[targetIdx]

	exclude := -1
	if g.opts.ExcludeTarget {
		exclude = targetIdx
	}
	exemplars, err := g.sampler.SampleExcluding(pool, g.opts.NumShots, exclude)
	if err != nil {
		return "", err
	}

	messages := make([]providers.ChatMessage, 0, len(exemplars)+1)
	messages = append(messages, exemplars...)
	messages = append(messages, providers.UserMessage(prompt.Build(target.Question, target.Context())))

	req := providers.CompletionRequest{
		Host:         host,
		Model:        host.Model,
		SystemPrompt: g.opts.SystemPrompt,
		Messages:     messages,
	}

	answer, err := g.complete(ctx, req)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// complete invokes the endpoint, retrying remote failures up to the
// configured attempt count. Malformed responses are never retried.
func (g *Generator) complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	attempts := g.opts.RetryAttempts + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		answer, err := g.completeOnce(ctx, req)
		if err == nil {
			return answer, nil
		}

		var remote *RemoteError
		if !errors.As(err, &remote) {
			return "", err
		}
		lastErr = err

		if attempt < attempts {
			delay := g.opts.RetryBackoff * time.Duration(attempt)
			logging.LogEvent("retrying completion for %s (%s) after error (attempt %d/%d, backoff %s): %v",
				req.Host.Name, req.Model, attempt, attempts, delay, err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", &RemoteError{Host: req.Host.Name, Model: req.Model, Err: ctx.Err()}
			}
		}
	}
	return "", lastErr
}

func (g *Generator) completeOnce(ctx context.Context, req providers.CompletionRequest) (string, error) {
	var output strings.Builder

	callbacks := providers.CompletionCallbacks{
		OnContent: func(msg providers.ChatMessage) error {
			output.WriteString(msg.Content)
			return nil
		},
	}

	if err := g.provider.Complete(ctx, req, callbacks); err != nil {
		if errors.Is(err, providers.ErrNoChoices) {
			return "", err
		}
		return "", &RemoteError{Host: req.Host.Name, Model: req.Model, Err: err}
	}

	answer := strings.TrimSpace(output.String())
	if answer == "" {
		return "", ErrEmptyCompletion
	}
	return answer, nil
}
