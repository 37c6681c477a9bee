package cmd

import (
	"github.com/spf13/cobra"

	appui "github.com/OpenTraceLab/OpenTraceDAQ/internal/ui"
	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
)

var (
	uiLight bool
	uiMode  string
)

var uiCmd = &cobra.Command{
	Use:   "ui [log_file]",
	Short: "Launch the interactive viewer",
	Long: `Launch the log viewer window. Signals are picked from the list on the
left, the time range is edited below it and plots can be drawn on separate
axes or overlaid on one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := uiOptions(args)
		if err != nil {
			return err
		}
		return appui.Run(opts)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().BoolVar(&uiLight, "light", false, "start in light mode")
	uiCmd.Flags().StringVar(&uiMode, "mode", "separate", "initial plot mode: separate or overlay")
}

func uiOptions(args []string) (appui.Options, error) {
	opts := appui.DefaultOptions()
	mode, err := plotplan.ParseMode(uiMode)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	opts.DarkMode = !uiLight
	if len(args) > 0 {
		opts.File = args[0]
	}
	return opts, nil
}
