package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatstats/internal/application/commands"
	"chatstats/internal/ports"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [export-folder]",
	Short: "Count messages per year and rank channels",
	Long: `Count the messages of every channel in the export, per year, and list
the five most active channels of each year.

Examples:
  chatstats-cli summarize ~/Downloads/package
  chatstats-cli summarize --debug --newest 2024 --oldest 2018 ~/Downloads/package`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := yearRange()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sink := ports.ProgressFunc(func(line string) {
			fmt.Fprintln(out, line)
		})

		summarize := commands.NewSummarizeCommand(openExport(), years, cfg.Debug, sink).WithLogger(logger)
		_, err = summarize.Execute(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
