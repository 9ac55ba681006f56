// internal/sampler/sampler.go
// Package sampler draws few-shot exemplars from the instance pool and renders
// them as user/assistant message pairs.
package sampler

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hinteval/hinteval/internal/dataset"
	"github.com/hinteval/hinteval/internal/prompt"
	"github.com/hinteval/hinteval/internal/providers"
)

// ErrExceedsPool marks a request for more exemplars than the pool can supply
// without replacement.
var ErrExceedsPool = errors.New("exemplar count exceeds pool size")

// Sampler draws instances uniformly at random without replacement. The
// pseudo-random source is injected so runs are reproducible from a configured
// seed and tests can assert exact selections.
type Sampler struct {
	rng *rand.Rand
}

// New returns a Sampler seeded from configuration.
func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// NewFromRand returns a Sampler using the given source directly.
func NewFromRand(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample draws k distinct instances from the full pool and renders each as a
// user/assistant pair, in draw order. Every call re-draws independently.
func (s *Sampler) Sample(pool dataset.Pool, k int) ([]providers.ChatMessage, error) {
	return s.SampleExcluding(pool, k, -1)
}

// SampleExcluding behaves like Sample but, when exclude is a valid pool
// index, never draws that instance. This backs the policy of keeping the
// target instance out of its own exemplars; exclude < 0 samples pool-wide.
func (s *Sampler) SampleExcluding(pool dataset.Pool, k int, exclude int) ([]providers.ChatMessage, error) {
	if k < 0 {
		return nil, fmt.Errorf("exemplar count must not be negative, got %d", k)
	}

	candidates := make([]int, 0, len(pool))
	for i := range pool {
		if i == exclude {
			continue
		}
		candidates = append(candidates, i)
	}
	if k > len(candidates) {
		return nil, fmt.Errorf("requested %d exemplars from a pool of %d: %w", k, len(candidates), ErrExceedsPool)
	}

	messages := make([]providers.ChatMessage, 0, 2*k)
	for _, pick := range s.rng.Perm(len(candidates))[:k] {
		instance := pool[candidates[pick]]
		answer, err := instance.GroundTruth()
		if err != nil {
			return nil, err
		}
		messages = append(messages,
			providers.UserMessage(prompt.Build(instance.Question, instance.Context())),
			providers.AssistantMessage(answer),
		)
	}
	return messages, nil
}
