// internal/evalloop/evalloop.go
// Package evalloop drives one evaluation run: it visits every instance in
// pool order, generates an answer for each, and pairs it with the instance's
// ground truth.
package evalloop

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hinteval/hinteval/internal/appconfig"
	"github.com/hinteval/hinteval/internal/dataset"
	"github.com/hinteval/hinteval/internal/generator"
	"github.com/hinteval/hinteval/internal/logging"
)

// PredictionRecord pairs a model's answer with the canonical ground truth for
// one instance, in pool traversal order.
type PredictionRecord struct {
	InstanceID  string `json:"instanceId,omitempty"`
	Question    string `json:"question"`
	Predicted   string `json:"predicted"`
	GroundTruth string `json:"groundTruth"`
}

// Options controls a run's failure policy and progress reporting.
type Options struct {
	// SkipFailures logs and skips a failing instance instead of aborting the
	// run. Off by default: the first error aborts.
	SkipFailures bool
	// OnProgress, when set, is called after each instance completes.
	OnProgress func(done, total int, question string)
}

// Run visits every instance sequentially. One instance is fully processed,
// including its own independent exemplar sampling, before the next begins.
// On failure the records accumulated so far are returned alongside the error
// so callers can decide whether to surface them.
func Run(ctx context.Context, gen *generator.Generator, host appconfig.Host, pool dataset.Pool, opts Options) ([]PredictionRecord, error) {
	records := make([]PredictionRecord, 0, len(pool))
	total := len(pool)

	for i, instance := range pool {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		truth, err := instance.GroundTruth()
		if err == nil {
			var predicted string
			predicted, err = gen.Generate(ctx, host, pool, i)
			if err == nil {
				records = append(records, PredictionRecord{
					InstanceID:  instance.ID,
					Question:    instance.Question,
					Predicted:   predicted,
					GroundTruth: truth,
				})
			}
		}

		if err != nil {
			if !opts.SkipFailures {
				return records, fmt.Errorf("instance %d/%d: %w", i+1, total, err)
			}
			logging.LogEvent("skipping instance %d/%d after error: %v", i+1, total, err)
		}

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, total, instance.Question)
		}
	}

	return records, nil
}

// resultRecord is one exported JSONL line.
type resultRecord struct {
	Timestamp string `json:"timestamp"`
	Host      string `json:"host"`
	Model     string `json:"model"`
	PredictionRecord
}

// Export appends every record to a per-model JSONL file under dir.
func Export(dir string, host appconfig.Host, records []PredictionRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating results directory: %w", err)
	}

	fileName := fmt.Sprintf("%s.jsonl", slugify(host.Model))
	path := filepath.Join(dir, fileName)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("error opening results file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	timestamp := time.Now().Format(time.RFC3339)
	for _, record := range records {
		line := resultRecord{
			Timestamp:        timestamp,
			Host:             host.Name,
			Model:            host.Model,
			PredictionRecord: record,
		}
		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("error writing results: %w", err)
		}
	}

	return nil
}

// slugify converts a string into a filesystem-friendly slug.
func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ":", "_")
	re := regexp.MustCompile(`[^a-z0-9_]+`)
	s = re.ReplaceAllString(s, "-")
	s = regexp.MustCompile(`-+`).ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")
	return s
}
