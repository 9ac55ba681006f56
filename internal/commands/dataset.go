// internal/commands/dataset.go
package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hinteval/hinteval/internal/dataset"
	"github.com/hinteval/hinteval/internal/prompt"
	"github.com/hinteval/hinteval/internal/util"
)

// datasetCmd groups dataset tooling.
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Validate and preview the question dataset",
}

// datasetValidateCmd checks every record in the questions file.
var datasetValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every dataset record against the instance schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if currentConfig == nil {
			return fmt.Errorf("config is nil")
		}

		problems, err := dataset.Validate(currentConfig.Dataset.QuestionsPath)
		if err != nil {
			return err
		}
		if len(problems) == 0 {
			color.Green("dataset %s is valid", currentConfig.Dataset.QuestionsPath)
			return nil
		}
		for _, problem := range problems {
			color.Red(problem)
		}
		return fmt.Errorf("dataset contains %d invalid records", len(problems))
	},
}

var previewCount int

// datasetPreviewCmd renders the exact prompt for the first instances without
// calling the model.
var datasetPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the prompt for the first instances without calling the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		if currentConfig == nil {
			return fmt.Errorf("config is nil")
		}

		pool, err := dataset.Load(currentConfig.Dataset.QuestionsPath, currentConfig.Dataset.HintsPath)
		if err != nil {
			return err
		}

		count := previewCount
		if count <= 0 || count > len(pool) {
			count = len(pool)
		}

		for i := 0; i < count; i++ {
			instance := pool[i]
			truth, err := instance.GroundTruth()
			if err != nil {
				return err
			}
			fmt.Printf("--- instance %d/%d (%s) ---\n", i+1, len(pool), instance.ID)
			fmt.Println(util.WrapToWidth(prompt.Build(instance.Question, instance.Context()), 100))
			fmt.Printf("expected: %s\n\n", truth)
		}
		return nil
	},
}

func init() {
	datasetPreviewCmd.Flags().IntVarP(&previewCount, "count", "n", 3, "number of instances to preview")
	datasetCmd.AddCommand(datasetValidateCmd)
	datasetCmd.AddCommand(datasetPreviewCmd)
	rootCmd.AddCommand(datasetCmd)
}
