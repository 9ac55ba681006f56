// internal/prompt/prompt.go
// Package prompt renders the fixed question/context template sent to the
// completion endpoint.
package prompt

import "fmt"

// promptTemplate places the context block before the question block. The
// trailing "Answer:" cue makes the model begin its completion with the answer
// itself.
const promptTemplate = "Context:\n%s\n\nQuestion:\n%s\n\nAnswer:"

// Build renders a question and its context through the fixed template. Empty
// context and empty question are both valid and render as empty sections.
func Build(question, context string) string {
	return fmt.Sprintf(promptTemplate, context, question)
}
