// internal/commands/run.go
package commands

import (
	"github.com/spf13/cobra"
)

// runCmd groups the evaluation workflows.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run evaluation workflows",
}

func init() {
	rootCmd.AddCommand(runCmd)
}
