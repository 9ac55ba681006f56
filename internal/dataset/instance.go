// internal/dataset/instance.go
// Package dataset loads the question pool produced by the upstream dataset and
// hint-generation collaborators. The pool is assembled before a run starts and
// is read-only afterwards.
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAnswers marks an instance that carries no candidate answers.
var ErrNoAnswers = errors.New("instance has no candidate answers")

// Instance is one evaluation unit: a question, its candidate answers (the
// first is the canonical ground truth), and the hint snippets attached by the
// hint-generation collaborator.
type Instance struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Hints    []string `json:"hints,omitempty"`
}

// GroundTruth returns the canonical answer, the first candidate.
func (in Instance) GroundTruth() (string, error) {
	if len(in.Answers) == 0 {
		if in.ID != "" {
			return "", fmt.Errorf("instance %s: %w", in.ID, ErrNoAnswers)
		}
		return "", ErrNoAnswers
	}
	return in.Answers[0], nil
}

// Context joins the instance's hints with newlines, in hint order. An
// instance without hints yields an empty context.
func (in Instance) Context() string {
	return strings.Join(in.Hints, "\n")
}

// Pool is the ordered instance sequence traversed by an evaluation run.
type Pool []Instance
