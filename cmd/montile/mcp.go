package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/1broseidon/montile/internal/config"
	"github.com/1broseidon/montile/internal/ipc"
	"github.com/1broseidon/montile/internal/mcp"
	"github.com/1broseidon/montile/internal/runtimepath"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: montile mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'montile mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Daemon socket (default: $MONTILE_SOCKET or the runtime directory)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: montile mcp serve [--socket PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the MCP server on stdio. Tools forward to a running montile daemon.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Example (Claude Code):")
		fmt.Fprintln(os.Stderr, "  claude mcp add montile -- montile mcp serve")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Logs go to a file of their own; stdout carries the protocol.
	cfg := config.DefaultConfig()
	if res, err := loadConfig(""); err == nil {
		cfg = res.Config
	}
	logPath, err := runtimepath.LogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg.Logging.File = filepath.Join(filepath.Dir(logPath), "mcp.log")
	logs, err := newLogManager(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logs.Close()

	server := mcp.NewServer(ipc.NewClient(*socket), logs.Logger("mcp"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		return 1
	}
	return 0
}
