package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "otd",
	Short: "OpenTraceDAQ - DashDAQ log viewer",
	Long: `OpenTraceDAQ (otd) loads DashDAQ CSV exports, infers their signals and
units, and plots selected signals against elapsed time.

Examples:
  otd ui                              # Launch the viewer
  otd ui Pajero_Run1.csv              # Launch the viewer with a log open
  otd info Pajero_Run1.csv            # Show signals, units and ranges
  otd plan Pajero_Run1.csv RPM Speed  # Show how a plot request resolves`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
