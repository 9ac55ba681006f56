// internal/tui/progress.go
// Package tui renders a live progress view while an evaluation run works
// through the instance pool.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hinteval/hinteval/internal/util"
)

var (
	captionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ProgressMsg reports that an instance finished processing.
type ProgressMsg struct {
	Done     int
	Total    int
	Question string
}

// DoneMsg tells the program the run is over.
type DoneMsg struct{}

// ProgressModel is the bubbletea model behind the live evaluation view.
type ProgressModel struct {
	caption  string
	bar      progress.Model
	done     int
	total    int
	question string
	quitting bool
}

// NewProgressModel builds the model for one host/model run over total instances.
func NewProgressModel(caption string, total int) ProgressModel {
	return ProgressModel{
		caption: caption,
		bar:     progress.New(progress.WithDefaultGradient()),
		total:   total,
	}
}

// NewProgram wraps the model in a tea.Program ready to run.
func NewProgram(caption string, total int) *tea.Program {
	return tea.NewProgram(NewProgressModel(caption, total))
}

func (m ProgressModel) Init() tea.Cmd {
	return nil
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		return m, nil
	case ProgressMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.question = msg.Question
		return m, nil
	case DoneMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	question := util.TruncateRunes(m.question, 60)

	return fmt.Sprintf("%s\n\n%s\n\n[%d/%d] %s\n",
		captionStyle.Render(m.caption),
		m.bar.ViewAs(percent),
		m.done, m.total,
		questionStyle.Render(question),
	)
}
