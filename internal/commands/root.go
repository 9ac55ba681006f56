// internal/commands/root.go
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hinteval/hinteval/internal/appconfig"
	"github.com/hinteval/hinteval/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hinteval",
	Short: "hinteval — hint-conditioned question answering evaluation harness",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			return err
		}

		// Flags win over config file values; viper holds the merged view.
		if cmd.Flags().Changed("debug") || viper.IsSet("debug") {
			cfg.Debug = viper.GetBool("debug")
		}
		if cmd.Flags().Changed("progress") || viper.IsSet("progress") {
			cfg.Progress = viper.GetBool("progress")
		}
		if cmd.Flags().Changed("skipFailures") || viper.IsSet("skipFailures") {
			cfg.SkipFailures = viper.GetBool("skipFailures")
		}
		if cmd.Flags().Changed("excludeTarget") || viper.IsSet("excludeTarget") {
			cfg.ExcludeTarget = viper.GetBool("excludeTarget")
		}
		if cmd.Flags().Changed("numShots") {
			shots := viper.GetInt("numShots")
			cfg.NumShots = &shots
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = viper.GetInt64("seed")
		}
		if cmd.Flags().Changed("logFile") {
			cfg.LogFile = viper.GetString("logFile")
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(execute())
}

// execute runs the root command and reports the process exit code. os.Exit
// skips deferred calls, so the log file is closed before Execute exits.
func execute() int {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("progress", false, "render a live progress view during runs")
	rootCmd.PersistentFlags().Bool("skipFailures", false, "skip failing instances instead of aborting the run")
	rootCmd.PersistentFlags().Bool("excludeTarget", false, "keep the target instance out of its own exemplars")
	rootCmd.PersistentFlags().Int("numShots", 5, "few-shot exemplars per question")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed for exemplar sampling")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))
	_ = viper.BindPFlag("skipFailures", rootCmd.PersistentFlags().Lookup("skipFailures"))
	_ = viper.BindPFlag("excludeTarget", rootCmd.PersistentFlags().Lookup("excludeTarget"))
	_ = viper.BindPFlag("numShots", rootCmd.PersistentFlags().Lookup("numShots"))
	_ = viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in the config file so viper can merge it with bound flags.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// appconfig.Load reports unreadable configs with more context.
			return
		}
	}
}
