package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"chatstats/internal/adapters/filesystem"
	"chatstats/internal/application"
	"chatstats/internal/application/commands"
	"chatstats/internal/ports"
)

// Defaults holds the settings used when a tool call omits an argument
type Defaults struct {
	ExportRoot string
	Debug      bool
	NewestYear int
	OldestYear int
}

// RegisterTools adds the export statistics tools to the MCP server.
func RegisterTools(s *server.MCPServer, defaults Defaults, logger zerolog.Logger) {
	s.AddTool(summarizeTool(), summarizeHandler(defaults, logger))
	s.AddTool(channelsTool(), channelsHandler(defaults))
}

// --- summarize ---

func summarizeTool() mcp.Tool {
	return mcp.NewTool("summarize",
		mcp.WithDescription("Count the messages of a Discord data export per year and list the five most active channels of each year. Returns the processing log followed by the summary."),
		mcp.WithString("export_root",
			mcp.Description("Folder of the unzipped Discord data package (the one containing messages/index.json). Defaults to the configured export."),
		),
		mcp.WithBoolean("debug",
			mcp.Description("Also list every channel with its name while processing."),
		),
		mcp.WithNumber("newest",
			mcp.Description("Newest year to count (default 2025)."),
		),
		mcp.WithNumber("oldest",
			mcp.Description("Oldest year to count (default 2020)."),
		),
	)
}

func summarizeHandler(defaults Defaults, logger zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("export_root", defaults.ExportRoot)
		debug := req.GetBool("debug", defaults.Debug)
		years, err := application.NewYearRange(
			req.GetInt("newest", defaults.NewestYear),
			req.GetInt("oldest", defaults.OldestYear),
		)
		if err != nil {
			return toolError(err)
		}

		var log strings.Builder
		sink := ports.ProgressFunc(func(line string) {
			log.WriteString(line)
			log.WriteByte('\n')
		})

		summarize := commands.NewSummarizeCommand(filesystem.NewExportReader(root), years, debug, sink).
			WithLogger(logger)
		if _, err := summarize.Execute(ctx); err != nil {
			return summaryError(err, log.String())
		}
		return mcp.NewToolResultText(log.String()), nil
	}
}

// --- channels ---

func channelsTool() mcp.Tool {
	return mcp.NewTool("channels",
		mcp.WithDescription("List the channel folders of a Discord data export with their names, ordered by channel ID."),
		mcp.WithString("export_root",
			mcp.Description("Folder of the unzipped Discord data package. Defaults to the configured export."),
		),
	)
}

func channelsHandler(defaults Defaults) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("export_root", defaults.ExportRoot)

		list := commands.NewListChannelsCommand(filesystem.NewExportReader(root))
		channels, err := list.Execute(ctx)
		if err != nil {
			return summaryError(err, "")
		}
		if len(channels) == 0 {
			return mcp.NewToolResultText("No channels."), nil
		}

		var sb strings.Builder
		for _, c := range channels {
			fmt.Fprintf(&sb, "%s %s\n", c.ID, c.Name)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// summaryError reports a failed run with the log produced before it stopped
func summaryError(err error, partial string) (*mcp.CallToolResult, error) {
	text := application.UserMessage(err)
	var se *application.SummaryError
	if errors.As(err, &se) && se.Path != "" && application.IsFatalPrecondition(err) {
		text += "\n(" + se.Path + ")"
	}
	if partial != "" {
		text = partial + "\n" + text
	}
	return mcp.NewToolResultError(text), nil
}
