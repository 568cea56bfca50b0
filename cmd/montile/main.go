package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "call":
		os.Exit(runCall(os.Args[2:]))
	case "idle":
		os.Exit(runIdle(os.Args[2:]))
	case "disjoin":
		os.Exit(runDisjoin(os.Args[2:], os.Stdout, os.Stderr))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: montile <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the montile daemon (foreground)")
	fmt.Fprintln(w, "  call CMD [ARGS...]  Run a command in the daemon, e.g. 'montile call list_monitors'")
	fmt.Fprintln(w, "  idle [HOOK]         Print hooks emitted by the daemon until interrupted")
	fmt.Fprintln(w, "  disjoin RECT...     Split overlapping WxH+X+Y rectangles (no daemon needed)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config path         Print the configuration file path")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'montile <command> --help' for command-specific options.")
	fmt.Fprintln(w, "Run 'montile call list_commands' for the daemon's commands.")
}
