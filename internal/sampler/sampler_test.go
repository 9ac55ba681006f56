package sampler

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/hinteval/hinteval/internal/dataset"
	"github.com/hinteval/hinteval/internal/providers"
)

func testPool() dataset.Pool {
	return dataset.Pool{
		{ID: "q1", Question: "Capital of France?", Answers: []string{"Paris"}, Hints: []string{"Paris is the capital of France."}},
		{ID: "q2", Question: "Year WWII ended?", Answers: []string{"1945"}},
		{ID: "q3", Question: "Largest planet?", Answers: []string{"Jupiter", "Saturn"}},
	}
}

func TestSampleReturnsUserAssistantPairs(t *testing.T) {
	s := New(42)
	pool := testPool()

	for k := 0; k <= len(pool); k++ {
		messages, err := s.Sample(pool, k)
		if err != nil {
			t.Fatalf("k=%d: Sample returned error: %v", k, err)
		}
		if len(messages) != 2*k {
			t.Fatalf("k=%d: expected %d messages, got %d", k, 2*k, len(messages))
		}
		for i := 0; i < len(messages); i += 2 {
			if messages[i].Role != providers.RoleUser {
				t.Fatalf("message %d: expected user role, got %s", i, messages[i].Role)
			}
			if messages[i+1].Role != providers.RoleAssistant {
				t.Fatalf("message %d: expected assistant role, got %s", i+1, messages[i+1].Role)
			}
		}
	}
}

func TestSampleExceedsPool(t *testing.T) {
	s := New(1)
	pool := testPool()

	_, err := s.Sample(pool, len(pool)+1)
	if !errors.Is(err, ErrExceedsPool) {
		t.Fatalf("expected ErrExceedsPool, got %v", err)
	}
}

func TestSampleNegativeCount(t *testing.T) {
	s := New(1)
	if _, err := s.Sample(testPool(), -1); err == nil {
		t.Fatal("expected error for negative count")
	}
}

func TestSampleDrawsDistinctInstances(t *testing.T) {
	s := New(7)
	pool := testPool()

	messages, err := s.Sample(pool, len(pool))
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < len(messages); i += 2 {
		if seen[messages[i].Content] {
			t.Fatalf("instance drawn twice: %q", messages[i].Content)
		}
		seen[messages[i].Content] = true
	}
}

func TestSampleDeterministicWithFixedSource(t *testing.T) {
	pool := testPool()

	first, err := NewFromRand(rand.New(rand.NewSource(99))).Sample(pool, 2)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	second, err := NewFromRand(rand.New(rand.NewSource(99))).Sample(pool, 2)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical draws, got %d vs %d messages", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("message %d differs between identically seeded draws", i)
		}
	}
}

func TestSampleUsesFirstAnswerVerbatim(t *testing.T) {
	s := New(3)
	pool := dataset.Pool{
		{ID: "q3", Question: "Largest planet?", Answers: []string{"Jupiter", "Saturn"}},
	}

	messages, err := s.Sample(pool, 1)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	if messages[1].Content != "Jupiter" {
		t.Fatalf("expected first candidate answer, got %q", messages[1].Content)
	}
}

func TestSampleExemplarContextJoinsHints(t *testing.T) {
	s := New(3)
	pool := dataset.Pool{
		{ID: "q1", Question: "Capital of France?", Answers: []string{"Paris"}, Hints: []string{"first hint", "second hint"}},
	}

	messages, err := s.Sample(pool, 1)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	if !strings.Contains(messages[0].Content, "first hint\nsecond hint") {
		t.Fatalf("expected newline-joined hints in exemplar prompt, got %q", messages[0].Content)
	}
}

func TestSampleExcludingNeverDrawsTarget(t *testing.T) {
	pool := testPool()
	target := 0

	for seed := int64(0); seed < 20; seed++ {
		s := New(seed)
		messages, err := s.SampleExcluding(pool, len(pool)-1, target)
		if err != nil {
			t.Fatalf("seed %d: SampleExcluding returned error: %v", seed, err)
		}
		for i := 0; i < len(messages); i += 2 {
			if strings.Contains(messages[i].Content, pool[target].Question) {
				t.Fatalf("seed %d: target instance drawn as its own exemplar", seed)
			}
		}
	}
}

func TestSampleExcludingShrinksPopulation(t *testing.T) {
	s := New(5)
	pool := testPool()

	if _, err := s.SampleExcluding(pool, len(pool), 1); !errors.Is(err, ErrExceedsPool) {
		t.Fatalf("expected ErrExceedsPool when exclusion shrinks population, got %v", err)
	}
}

func TestSampleNoAnswersSurfacesDataError(t *testing.T) {
	s := New(5)
	pool := dataset.Pool{{ID: "bad", Question: "?"}}

	if _, err := s.Sample(pool, 1); !errors.Is(err, dataset.ErrNoAnswers) {
		t.Fatalf("expected ErrNoAnswers, got %v", err)
	}
}
