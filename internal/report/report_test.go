package report

import (
	"strings"
	"testing"

	"github.com/hinteval/hinteval/internal/evalloop"
)

func TestRenderOneRowPerRecord(t *testing.T) {
	records := []evalloop.PredictionRecord{
		{Predicted: "Paris", GroundTruth: "Paris"},
		{Predicted: "1944", GroundTruth: "1945"},
		{Predicted: "Jupiter", GroundTruth: "Jupiter"},
	}

	out := Render(records)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// header + separator + one line per record
	if len(lines) != 2+len(records) {
		t.Fatalf("expected %d lines, got %d:\n%s", 2+len(records), len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Predicted") || !strings.Contains(lines[0], "Ground Truth") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	for i, record := range records {
		row := lines[2+i]
		if !strings.Contains(row, record.Predicted) || !strings.Contains(row, record.GroundTruth) {
			t.Fatalf("row %d missing verbatim cells: %q", i, row)
		}
	}
}

func TestRenderColumnsAlign(t *testing.T) {
	records := []evalloop.PredictionRecord{
		{Predicted: "a very long predicted answer", GroundTruth: "x"},
		{Predicted: "b", GroundTruth: "y"},
	}

	out := Render(records)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// The ground-truth column must start at the same offset on every line.
	offset := strings.Index(lines[0], "Ground Truth")
	if offset < 0 {
		t.Fatalf("header missing ground truth column: %q", lines[0])
	}
	if strings.Index(lines[2], "x") != offset {
		t.Fatalf("row 0 ground truth misaligned:\n%s", out)
	}
	if strings.Index(lines[3], "y") != offset {
		t.Fatalf("row 1 ground truth misaligned:\n%s", out)
	}
}

func TestRenderEmptyRecords(t *testing.T) {
	out := Render(nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and separator only, got %d lines", len(lines))
	}
}

func TestRenderPreservesCellsVerbatim(t *testing.T) {
	records := []evalloop.PredictionRecord{
		{Predicted: "  spaced  ", GroundTruth: "Tübingen"},
	}
	out := Render(records)
	if !strings.Contains(out, "  spaced  ") {
		t.Fatalf("expected verbatim predicted cell, got:\n%s", out)
	}
	if !strings.Contains(out, "Tübingen") {
		t.Fatalf("expected verbatim ground truth cell, got:\n%s", out)
	}
}
