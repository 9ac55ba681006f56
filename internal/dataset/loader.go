// internal/dataset/loader.go
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// instanceSchema validates one JSONL record from the questions file.
var instanceSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type": "string",
		},
		"question": map[string]any{
			"type": "string",
		},
		"answers": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string"},
		},
		"hints": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []string{"question", "answers"},
}

// Load reads the questions JSONL file and, when hintsPath is non-empty, merges
// hints from the hint-generation collaborator's output keyed by instance id.
func Load(questionsPath, hintsPath string) (Pool, error) {
	pool, err := loadQuestions(questionsPath)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(hintsPath) != "" {
		hints, err := loadHints(hintsPath)
		if err != nil {
			return nil, err
		}
		for i := range pool {
			if attached, ok := hints[pool[i].ID]; ok {
				pool[i].Hints = attached
			}
		}
	}

	return pool, nil
}

func loadQuestions(path string) (Pool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening questions file: %w", err)
	}
	defer file.Close()

	schemaLoader := gojsonschema.NewGoLoader(instanceSchema)

	var pool Pool
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := validateRecord(schemaLoader, []byte(line)); err != nil {
			return nil, fmt.Errorf("questions file line %d: %w", lineNo, err)
		}

		var instance Instance
		if err := json.Unmarshal([]byte(line), &instance); err != nil {
			return nil, fmt.Errorf("questions file line %d: %w", lineNo, err)
		}
		pool = append(pool, instance)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading questions file: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("questions file %q contains no instances", path)
	}

	return pool, nil
}

// loadHints reads a JSON object mapping instance id to an ordered hint list.
func loadHints(path string) (map[string][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading hints file: %w", err)
	}

	var hints map[string][]string
	if err := json.Unmarshal(raw, &hints); err != nil {
		return nil, fmt.Errorf("error parsing hints file: %w", err)
	}
	return hints, nil
}

func validateRecord(schemaLoader gojsonschema.JSONLoader, record []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(record)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("invalid instance record: %s", strings.Join(problems, "; "))
}

// Validate checks every record in a questions JSONL file and returns one error
// message per offending line. A nil slice means the file is well-formed.
func Validate(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening questions file: %w", err)
	}
	defer file.Close()

	schemaLoader := gojsonschema.NewGoLoader(instanceSchema)

	var problems []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := validateRecord(schemaLoader, []byte(line)); err != nil {
			problems = append(problems, fmt.Sprintf("line %d: %v", lineNo, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading questions file: %w", err)
	}

	return problems, nil
}
