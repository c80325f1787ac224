package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"chatstats/internal/adapters/editor"
	"chatstats/internal/adapters/filesystem"
	"chatstats/internal/adapters/tui"
	"chatstats/internal/adapters/tui/views"
	"chatstats/internal/config"
	"chatstats/internal/logging"
	"chatstats/internal/ports"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run starts the UI and returns the process exit code. Deferred cleanup
// happens here so that main's os.Exit cannot skip it.
func run(args []string, stderr io.Writer) int {
	def := config.Default()
	flags := pflag.NewFlagSet("chatstats", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringP("export", "e", "", "export folder to prefill")
	flags.BoolP("debug", "d", false, "start with extra debug info enabled")
	flags.Int("newest", def.NewestYear, "newest year to count")
	flags.Int("oldest", def.OldestYear, "oldest year to count")
	flags.String("log-format", def.LogFormat, "diagnostic log format (console or json)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if flags.NArg() > 0 {
		cfg.ExportRoot = flags.Arg(0)
	}

	years, err := cfg.YearRange()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// The terminal belongs to the UI, so diagnostics go to a file
	logger := zerolog.Nop()
	logPath := ""
	if f, err := logging.OpenFile("chatstats.log"); err == nil {
		defer f.Close()
		logPath = f.Name()
		logger = logging.New(logging.Options{
			Debug:  cfg.Debug,
			Format: logging.Format(cfg.LogFormat),
			Output: f,
		})
	}

	app := tui.NewApp(views.SummaryOptions{
		ExportRoot: cfg.ExportRoot,
		Debug:      cfg.Debug,
		Years:      years,
		Logger:     logger,
		LogPath:    logPath,
		OpenExport: func(root string) ports.ExportReader {
			return filesystem.NewExportReader(root)
		},
	}, editor.NewOpener())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("ui stopped")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
