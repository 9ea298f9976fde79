package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/eights/internal/config"
	"github.com/arcanaland/eights/internal/logging"
)

var (
	logLevel string
	logFile  string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "eights",
	Short: "Play Crazy Eights against the computer",
	Long: `Eights is a terminal game of Crazy Eights for one player against a scripted opponent.
Match the top card of the discard pile by suit or rank, play an 8 to name a new suit,
and be the first to empty your hand.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path, '-' for stderr")

	RootCmd.AddCommand(playCmd)
	RootCmd.AddCommand(simulateCmd)
	RootCmd.AddCommand(rulesCmd)
	RootCmd.AddCommand(configCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig reads the config file and environment, then applies the
// logging flags given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFile)
}
