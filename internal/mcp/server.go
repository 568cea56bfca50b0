// Package mcp exposes the daemon's monitor commands as MCP tools over stdio.
package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/montile/internal/ipc"
)

const (
	ServerName    = "montile"
	ServerVersion = "0.1.0"
)

// Caller runs a command in the daemon.
type Caller interface {
	Call(args ...string) (*ipc.Response, error)
}

// Server is the MCP server for monitor and tag control.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Caller
	logger    *slog.Logger
}

// NewServer creates an MCP server that forwards commands to daemon.
func NewServer(daemon Caller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		daemon: daemon,
		logger: logger,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List all monitors with their geometry (WxH+X+Y), the tag each one shows, optional name, and which monitor is focused or locked.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_command",
		Description: "Run any montile command, e.g. [\"add_monitor\", \"1024x768+1920+0\"] or [\"set_monitor_rects\", \"1920x1080+0+0\"]. Returns the exit status (0 on success) and the command output.",
	}, s.handleRunCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_monitor",
		Description: "Focus a monitor by index, name, or relative offset (+1 / -1). The pointer follows the focus.",
	}, s.handleFocusMonitor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "use_tag",
		Description: "Show a tag on a monitor. If the tag is shown on another monitor the two monitors swap tags, or focus moves there when swapping is disabled.",
	}, s.handleUseTag)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "tag_status",
		Description: "Report every tag's state relative to a monitor: focused, shown here, shown on the focused monitor, shown elsewhere, hidden with windows, or empty.",
	}, s.handleTagStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "disjoin_rects",
		Description: "Split overlapping rectangles (WxH+X+Y) into a set of non-overlapping rectangles covering the same area. Does not need a running daemon.",
	}, s.handleDisjoinRects)
}
