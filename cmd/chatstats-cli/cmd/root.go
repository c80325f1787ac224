package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatstats/internal/adapters/filesystem"
	"chatstats/internal/application"
	"chatstats/internal/config"
	"chatstats/internal/logging"
	"chatstats/internal/ports"
)

var (
	cfg    config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "chatstats-cli",
	Short: "Message statistics for Discord data exports",
	Long: `chatstats-cli reads the messages folder of a Discord data package and
reports how many messages were sent each year and in which channels.

The export folder is the directory that contains messages/index.json.
It can be given as an argument, with --export, with CHATSTATS_EXPORT or
in chatstats.yaml under the user config directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		loaded, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		if len(args) > 0 {
			loaded.ExportRoot = args[0]
		}
		cfg = loaded
		logger = logging.New(logging.Options{
			Debug:  cfg.Debug,
			Format: logging.Format(cfg.LogFormat),
			Output: cmd.ErrOrStderr(),
		})
		if cfg.File != "" {
			logger.Debug().Str("file", cfg.File).Msg("loaded config")
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, application.UserMessage(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	def := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringP("export", "e", "", "path to the Discord export folder")
	flags.BoolP("debug", "d", false, "list every channel while processing")
	flags.Int("newest", def.NewestYear, "newest year to count")
	flags.Int("oldest", def.OldestYear, "oldest year to count")
	flags.String("log-format", def.LogFormat, "diagnostic log format (console or json)")
}

// openExport returns the reader for the configured export folder
func openExport() ports.ExportReader {
	return filesystem.NewExportReader(cfg.ExportRoot)
}

// yearRange returns the configured years or a usage error
func yearRange() (application.YearRange, error) {
	years, err := cfg.YearRange()
	if err != nil {
		return application.YearRange{}, fmt.Errorf("invalid --newest/--oldest: %w", err)
	}
	return years, nil
}
