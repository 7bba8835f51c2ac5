package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/systmms/scope/cmd/scopedemo/commands"
	"github.com/systmms/scope/internal/config"
	dserrors "github.com/systmms/scope/internal/errors"
	"github.com/systmms/scope/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dserrors.SimplifyError(err))
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "scopedemo",
		Short: "Demonstrate exit, failure and success scope guards",
		Long: `scopedemo exercises the scope guard library: it flips coins that make a
step fail and shows which guards ran, keeps secrets in locked memory that is
wiped on scope exit, and runs SQL statements in a transaction that is rolled
back by a failure guard.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger with parsed flags
			cfg.Logger = logging.New(debug, noColor)
			cfg.Path = configFile
			return cfg.Load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cfg.Logger != nil {
				_ = cfg.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewRunCommand(cfg),
		commands.NewWipeCommand(cfg),
		commands.NewTxCommand(cfg),
	)

	return rootCmd.Execute()
}
