// internal/commands/run_eval.go
package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hinteval/hinteval/internal/appconfig"
	"github.com/hinteval/hinteval/internal/dataset"
	"github.com/hinteval/hinteval/internal/evalloop"
	"github.com/hinteval/hinteval/internal/generator"
	"github.com/hinteval/hinteval/internal/logging"
	"github.com/hinteval/hinteval/internal/providerfactory"
	"github.com/hinteval/hinteval/internal/report"
	"github.com/hinteval/hinteval/internal/sampler"
	"github.com/hinteval/hinteval/internal/tui"
)

// runEvalCmd implements 'run eval', which answers every instance in the pool
// on each configured host and renders the predicted/ground-truth table.
var runEvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Answer every question in the dataset and report predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(currentConfig)
	},
}

func init() {
	runCmd.AddCommand(runEvalCmd)
}

func runEval(cfg *appconfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	pool, err := dataset.Load(cfg.Dataset.QuestionsPath, cfg.Dataset.HintsPath)
	if err != nil {
		return err
	}
	logging.LogEvent("loaded %d instances from %s", len(pool), cfg.Dataset.QuestionsPath)

	for _, host := range cfg.Hosts {
		if err := runEvalHost(cfg, host, pool); err != nil {
			color.Red("evaluation failed for %s (%s): %v", host.Name, host.Model, err)
			return err
		}
	}

	return nil
}

func runEvalHost(cfg *appconfig.Config, host appconfig.Host, pool dataset.Pool) error {
	provider, err := providerfactory.NewChatProvider(cfg, host)
	if err != nil {
		return err
	}
	defer provider.Close()

	logging.LogEvent("ensuring model %s is ready on host %s", host.Model, host.Name)
	if err := provider.EnsureModelReady(context.Background(), host, host.Model); err != nil {
		return fmt.Errorf("error ensuring model %s is ready on host %s: %w", host.Model, host.Name, err)
	}

	gen := generator.New(provider, sampler.New(cfg.Seed), generator.Options{
		NumShots:      cfg.ShotCount(),
		SystemPrompt:  cfg.SystemPrompt,
		ExcludeTarget: cfg.ExcludeTarget,
		RetryAttempts: cfg.RetryAttempts(),
		RetryBackoff:  cfg.RetryBackoff(),
	})

	caption := fmt.Sprintf("%s / %s", host.Name, host.Model)

	var records []evalloop.PredictionRecord
	if cfg.Progress {
		records, err = runWithProgressView(cfg, gen, host, pool, caption)
	} else {
		records, err = evalloop.Run(context.Background(), gen, host, pool, evalloop.Options{
			SkipFailures: cfg.SkipFailures,
			OnProgress: func(done, total int, question string) {
				fmt.Printf("[%d/%d] %s - %s\n", done, total, caption, question)
			},
		})
	}
	if err != nil {
		return err
	}

	report.Print(caption, records)

	if err := evalloop.Export(cfg.ResultsPath(), host, records); err != nil {
		return err
	}
	color.Green("wrote %d records for %s", len(records), caption)

	return nil
}

// progressProgram is the slice of tea.Program the run loop needs.
type progressProgram interface {
	Run() (tea.Model, error)
	Send(tea.Msg)
}

// runWithProgressView drives the run behind a live bubbletea view. The loop
// itself stays sequential; the program only mirrors its progress.
func runWithProgressView(cfg *appconfig.Config, gen *generator.Generator, host appconfig.Host, pool dataset.Pool, caption string) ([]evalloop.PredictionRecord, error) {
	return runBehindProgram(tui.NewProgram(caption, len(pool)), cfg, gen, host, pool)
}

// runBehindProgram runs the loop in a worker goroutine while the program owns
// the terminal. When the view exits early (ctrl+c, render error) the run
// context is canceled and the worker is joined before its records are read.
func runBehindProgram(program progressProgram, cfg *appconfig.Config, gen *generator.Generator, host appconfig.Host, pool dataset.Pool) ([]evalloop.PredictionRecord, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type runResult struct {
		records []evalloop.PredictionRecord
		err     error
	}
	results := make(chan runResult, 1)
	go func() {
		records, err := evalloop.Run(ctx, gen, host, pool, evalloop.Options{
			SkipFailures: cfg.SkipFailures,
			OnProgress: func(done, total int, question string) {
				program.Send(tui.ProgressMsg{Done: done, Total: total, Question: question})
			},
		})
		results <- runResult{records: records, err: err}
		program.Send(tui.DoneMsg{})
	}()

	_, viewErr := program.Run()
	cancel()
	result := <-results
	if viewErr != nil {
		return nil, viewErr
	}
	return result.records, result.err
}
