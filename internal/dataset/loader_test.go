package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadQuestionsAndHints(t *testing.T) {
	questions := `{"id":"q1","question":"Capital of France?","answers":["Paris"]}
{"id":"q2","question":"Year WWII ended?","answers":["1945"],"hints":["The war ended in the mid-1940s."]}
`
	hints := `{"q1":["Paris is the capital of France.","It is on the Seine."]}`

	questionsPath := writeTempFile(t, "questions.jsonl", questions)
	hintsPath := writeTempFile(t, "hints.json", hints)

	pool, err := Load(questionsPath, hintsPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(pool))
	}
	if len(pool[0].Hints) != 2 {
		t.Fatalf("expected hints attached to q1, got %v", pool[0].Hints)
	}
	// q2 keeps its inline hints when the hints file has no entry for it.
	if len(pool[1].Hints) != 1 {
		t.Fatalf("expected q2 inline hints preserved, got %v", pool[1].Hints)
	}

	truth, err := pool[0].GroundTruth()
	if err != nil {
		t.Fatalf("GroundTruth returned error: %v", err)
	}
	if truth != "Paris" {
		t.Fatalf("expected ground truth Paris, got %q", truth)
	}
}

func TestLoadRejectsRecordWithoutAnswers(t *testing.T) {
	questions := `{"id":"q1","question":"Capital of France?","answers":[]}
`
	path := writeTempFile(t, "questions.jsonl", questions)

	if _, err := Load(path, ""); err == nil {
		t.Fatal("expected error for record with empty answers")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := writeTempFile(t, "questions.jsonl", "\n\n")

	if _, err := Load(path, ""); err == nil {
		t.Fatal("expected error for file with no instances")
	}
}

func TestValidateReportsLineNumbers(t *testing.T) {
	questions := `{"id":"q1","question":"ok","answers":["a"]}
{"id":"q2","question":42,"answers":["a"]}
{"id":"q3","question":"ok"}
`
	path := writeTempFile(t, "questions.jsonl", questions)

	problems, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(problems), problems)
	}
}

func TestGroundTruthNoAnswers(t *testing.T) {
	instance := Instance{ID: "q9", Question: "?"}
	if _, err := instance.GroundTruth(); !errors.Is(err, ErrNoAnswers) {
		t.Fatalf("expected ErrNoAnswers, got %v", err)
	}
}

func TestContextJoinsHintsInOrder(t *testing.T) {
	instance := Instance{Hints: []string{"first", "second"}}
	if got := instance.Context(); got != "first\nsecond" {
		t.Fatalf("unexpected context: %q", got)
	}
	if got := (Instance{}).Context(); got != "" {
		t.Fatalf("expected empty context for no hints, got %q", got)
	}
}
