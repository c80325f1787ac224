package main

import (
	"context"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	mcpadapter "chatstats/internal/adapters/mcp"
	"chatstats/internal/config"
	"chatstats/internal/logging"
)

func main() {
	def := config.Default()
	flags := pflag.NewFlagSet("chatstats-mcp", pflag.ExitOnError)
	flags.String("export", "", "default export folder for tool calls")
	flags.Bool("debug", false, "log every channel while processing")
	flags.Int("newest", def.NewestYear, "default newest year")
	flags.Int("oldest", def.OldestYear, "default oldest year")
	flags.String("log-format", def.LogFormat, "diagnostic log format (console or json)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("chatstats-mcp: %v", err)
	}

	// stdout carries the protocol; diagnostics go to stderr
	logger := logging.New(logging.Options{
		Debug:  cfg.Debug,
		Format: logging.Format(cfg.LogFormat),
		Output: os.Stderr,
	})

	mcpServer := server.NewMCPServer(
		"chatstats-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, mcpadapter.Defaults{
		ExportRoot: cfg.ExportRoot,
		Debug:      cfg.Debug,
		NewestYear: cfg.NewestYear,
		OldestYear: cfg.OldestYear,
	}, logger)

	logger.Info().Str("export", cfg.ExportRoot).Msg("serving on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("chatstats-mcp: %v", err)
	}
}
