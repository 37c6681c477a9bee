package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDAQ/internal/session"
	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
)

var (
	planStart float64
	planEnd   float64
	planMode  string
)

var planCmd = &cobra.Command{
	Use:   "plan <log_file> [signal...]",
	Short: "Resolve a plot request",
	Long: `Resolve a plot request against a log and print the resulting axes,
labels and row range.

Without signal arguments every signal in the log is selected. --start and
--end default to the full time range; out-of-range values are clamped and
reported as warnings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Float64Var(&planStart, "start", 0, "window start in seconds")
	planCmd.Flags().Float64Var(&planEnd, "end", 0, "window end in seconds")
	planCmd.Flags().StringVar(&planMode, "mode", "separate", "plot mode: separate or overlay")
}

func runPlan(cmd *cobra.Command, args []string) error {
	mode, err := plotplan.ParseMode(planMode)
	if err != nil {
		return err
	}

	s := session.New()
	slog.Debug("loading log", "path", args[0])
	if err := s.OpenFile(args[0]); err != nil {
		return fmt.Errorf("error loading log: %w", err)
	}

	names := args[1:]
	if len(names) == 0 {
		names = s.Catalog().Names()
	}
	window := s.FullWindow()
	if cmd.Flags().Changed("start") {
		window.Start = planStart
	}
	if cmd.Flags().Changed("end") {
		window.End = planEnd
	}
	slog.Debug("resolving plot", "signals", names, "window", window.String(), "mode", mode.String())

	plan, err := s.Plot(names, window, mode)
	if err != nil {
		return fmt.Errorf("error resolving plot: %w", err)
	}
	showPlan(cmd.OutOrStdout(), plan)
	return nil
}

func showPlan(out io.Writer, plan *plotplan.Plan) {
	fmt.Fprintf(out, "Mode: %s\n", plan.Mode)
	fmt.Fprintf(out, "Window: %s s\n", plan.Window)
	fmt.Fprintf(out, "Rows: %d..%d (%d samples)\n", plan.Range.First, plan.Range.Last, plan.Range.Len())
	for _, w := range plan.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}
	fmt.Fprintln(out)

	for i, ax := range plan.Axes {
		fmt.Fprintf(out, "Axis %d:\n", i+1)
		for _, e := range ax.Entries {
			valid, missing := e.Values.Counts()
			fmt.Fprintf(out, "  %s (%d values, %d missing)\n", e.Label, valid, missing)
		}
	}
}
