// internal/commands/show.go
package commands

import (
	"github.com/spf13/cobra"
)

// showCmd groups read-only inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Inspect the current setup",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
