// internal/commands/show_config.go
package commands

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

// showConfigCmd prints the resolved configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pp.Println(currentConfig)
		return err
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
