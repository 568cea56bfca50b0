package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/1broseidon/montile/internal/ipc"
)

func runCall(args []string) int {
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	// Command arguments such as "-1" must not be read as flags.
	fs.SetInterspersed(false)
	socket := fs.String("socket", "", "Daemon socket (default: $MONTILE_SOCKET or the runtime directory)")
	noNewline := fs.BoolP("no-newline", "n", false, "Never append a trailing newline")
	quiet := fs.BoolP("quiet", "q", false, "Do not print the command output")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: montile call [options] COMMAND [ARGS...]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run a daemon command and exit with its status.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	resp, err := ipc.NewClient(*socket).Call(fs.Args()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !*quiet {
		writeOutput(os.Stdout, resp.Output, !*noNewline && term.IsTerminal(int(os.Stdout.Fd())))
	}
	return resp.Status
}

// writeOutput prints output and, when addNewline is set, terminates a
// non-empty output that lacks a final newline.
func writeOutput(w io.Writer, output string, addNewline bool) {
	fmt.Fprint(w, output)
	if addNewline && output != "" && !strings.HasSuffix(output, "\n") {
		fmt.Fprintln(w)
	}
}

var errIdleDone = errors.New("idle count reached")

func runIdle(args []string) int {
	fs := flag.NewFlagSet("idle", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Daemon socket (default: $MONTILE_SOCKET or the runtime directory)")
	count := fs.IntP("count", "c", 0, "Exit after printing this many hooks (0: run until interrupted)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: montile idle [--count N] [HOOK]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print hooks such as 'tag_changed TAG MONITOR' as the daemon emits them.")
		fmt.Fprintln(os.Stderr, "With HOOK only hooks of that name are printed.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}
	filter := fs.Arg(0)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	printed := 0
	err := ipc.NewClient(*socket).Idle(ctx, func(line string) error {
		if !hookMatches(line, filter) {
			return nil
		}
		fmt.Println(line)
		printed++
		if *count > 0 && printed >= *count {
			return errIdleDone
		}
		return nil
	})
	switch {
	case errors.Is(err, errIdleDone), errors.Is(err, context.Canceled):
		return 0
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// hookMatches reports whether the hook name of line equals filter. An
// empty filter matches everything.
func hookMatches(line, filter string) bool {
	if filter == "" {
		return true
	}
	name, _, _ := strings.Cut(line, "\t")
	return name == filter
}
