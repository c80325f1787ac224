package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatstats/internal/application/commands"
)

var channelsCmd = &cobra.Command{
	Use:   "channels [export-folder]",
	Short: "List the channels found in the export",
	Long: `List every channel folder of the export with its name from index.json.
Channels missing from the index are shown as (unknown).

Examples:
  chatstats-cli channels ~/Downloads/package`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list := commands.NewListChannelsCommand(openExport())
		channels, err := list.Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, c := range channels {
			fmt.Fprintf(out, "%s %s\n", c.ID, c.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}
