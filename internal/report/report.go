// internal/report/report.go
// Package report renders an evaluation run's predicted/ground-truth pairs as
// an aligned two-column table. It judges nothing: scoring is left to the
// reader or an external evaluator.
package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/hinteval/hinteval/internal/evalloop"
)

const (
	predictedHeader   = "Predicted"
	groundTruthHeader = "Ground Truth"
	columnGap         = "  "
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))

// Render returns the table as plain text: a header row, a separator, and one
// row per record in list order. Cell contents are verbatim.
func Render(records []evalloop.PredictionRecord) string {
	predictedWidth := utf8.RuneCountInString(predictedHeader)
	truthWidth := utf8.RuneCountInString(groundTruthHeader)
	for _, record := range records {
		if w := utf8.RuneCountInString(record.Predicted); w > predictedWidth {
			predictedWidth = w
		}
		if w := utf8.RuneCountInString(record.GroundTruth); w > truthWidth {
			truthWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(padRight(predictedHeader, predictedWidth))
	b.WriteString(columnGap)
	b.WriteString(padRight(groundTruthHeader, truthWidth))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", predictedWidth))
	b.WriteString(columnGap)
	b.WriteString(strings.Repeat("-", truthWidth))
	b.WriteString("\n")

	for _, record := range records {
		b.WriteString(padRight(record.Predicted, predictedWidth))
		b.WriteString(columnGap)
		b.WriteString(padRight(record.GroundTruth, truthWidth))
		b.WriteString("\n")
	}

	return b.String()
}

// Print writes the table to stdout with a styled host/model caption.
func Print(caption string, records []evalloop.PredictionRecord) {
	if caption != "" {
		fmt.Println(headerStyle.Render(caption))
	}
	fmt.Print(Render(records))
	fmt.Println()
}

func padRight(text string, width int) string {
	if pad := width - utf8.RuneCountInString(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}
