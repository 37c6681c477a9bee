package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/dashdaq"
)

var infoCmd = &cobra.Command{
	Use:   "info <log_file>",
	Short: "Show log information",
	Long: `Display the metadata, time span and signal catalog of a DashDAQ log.

Each signal is listed with its unit, the number of numeric and missing
samples, and its value range.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	slog.Debug("loading log", "path", filename)
	catalog, table, err := dashdaq.LoadFile(filename)
	if err != nil {
		return fmt.Errorf("error loading log: %w", err)
	}
	showLogSummary(cmd.OutOrStdout(), filename, catalog, table)
	return nil
}

func showLogSummary(out io.Writer, filename string, catalog *dashdaq.Catalog, table *dashdaq.Table) {
	fmt.Fprintf(out, "Log: %s\n", filename)

	if len(table.Metadata) > 0 {
		fmt.Fprintln(out, "Metadata:")
		for _, row := range table.Metadata {
			var cells []string
			for _, c := range row {
				if c = strings.TrimSpace(c); c != "" {
					cells = append(cells, c)
				}
			}
			if len(cells) > 0 {
				fmt.Fprintf(out, "  %s\n", strings.Join(cells, ", "))
			}
		}
	}
	fmt.Fprintln(out)

	lo, hi := table.TimeRange()
	fmt.Fprintf(out, "Rows: %d", table.Rows())
	if n := table.DroppedRows(); n > 0 {
		fmt.Fprintf(out, " (%d dropped)", n)
	}
	fmt.Fprintln(out)
	order := "monotonic"
	if !table.Monotonic() {
		order = "not monotonic"
	}
	fmt.Fprintf(out, "Time: %.3f s .. %.3f s (%s, source unit %q)\n", lo, hi, order, table.TimeUnit)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Signals: %d\n", catalog.Len())
	if catalog.Len() == 0 {
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tUNIT\tVALID\tMISSING\tMIN\tMAX")
	for _, sig := range catalog.Signals() {
		sum, _ := table.Summary(sig.Name)
		unit := sig.Unit
		if unit == "" {
			unit = "-"
		}
		if sum.Valid == 0 {
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\t-\t-\n", sig.Name, unit, sum.Valid, sum.Missing)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\t%g\t%g\n", sig.Name, unit, sum.Valid, sum.Missing, sum.Min, sum.Max)
	}
	tw.Flush()
}
