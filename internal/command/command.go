// Package command implements the textual command surface of the daemon.
// Every command takes an argument vector whose first element is the command
// name and yields an integer status plus human-readable output.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/monitor"
	"github.com/1broseidon/montile/internal/tags"
)

// Status is the exit code of a command.
type Status int

const (
	StatusOK                  Status = 0
	StatusUnknownError        Status = 1
	StatusCommandNotFound     Status = 2
	StatusInvalidArgument     Status = 3
	StatusSettingNotFound     Status = 4
	StatusTagInUse            Status = 5
	StatusForbidden           Status = 6
	StatusNoParameterExpected Status = 7
	StatusNeedMoreArgs        Status = 9
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnknownError:
		return "unknown error"
	case StatusCommandNotFound:
		return "command not found"
	case StatusInvalidArgument:
		return "invalid argument"
	case StatusSettingNotFound:
		return "setting not found"
	case StatusTagInUse:
		return "tag in use"
	case StatusForbidden:
		return "forbidden"
	case StatusNoParameterExpected:
		return "no parameter expected"
	case StatusNeedMoreArgs:
		return "need more arguments"
	default:
		return fmt.Sprintf("status %d", int(s))
	}
}

// Func handles one command. args[0] is the command name.
type Func func(args []string, out *strings.Builder) Status

// Detector returns the monitor rectangles reported by the display.
type Detector func() ([]geom.Rect, error)

// Config wires a Dispatcher to the state it operates on.
type Config struct {
	Monitors *monitor.Manager
	Tags     *tags.Registry
	Detect   Detector
	Logger   *slog.Logger
}

// Dispatcher routes argument vectors to command handlers.
type Dispatcher struct {
	monitors *monitor.Manager
	tags     *tags.Registry
	detect   Detector
	logger   *slog.Logger
	commands map[string]Func
}

// New creates a dispatcher with all monitor and tag commands registered.
func New(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Dispatcher{
		monitors: cfg.Monitors,
		tags:     cfg.Tags,
		detect:   cfg.Detect,
		logger:   logger,
		commands: map[string]Func{},
	}
	d.registerBuiltins()
	return d
}

func (d *Dispatcher) registerBuiltins() {
	builtins := map[string]Func{
		"list_monitors":     d.listMonitors,
		"list_padding":      d.listPadding,
		"add_monitor":       d.addMonitor,
		"remove_monitor":    d.removeMonitor,
		"move_monitor":      d.moveMonitor,
		"rename_monitor":    d.renameMonitor,
		"monitor_rect":      d.monitorRect,
		"set_pad":           d.setPad,
		"pad":               d.setPad,
		"set_monitor_rects": d.setMonitorRects,
		"set_monitors":      d.setMonitorRects,
		"detect_monitors":   d.detectMonitors,
		"disjoin_rects":     d.disjoinRects,
		"monitor_focus":     d.monitorFocus,
		"focus_monitor":     d.monitorFocus,
		"monitor_cycle":     d.monitorCycle,
		"cycle_monitor":     d.monitorCycle,
		"monitors_lock":     d.monitorsLock,
		"lock":              d.monitorsLock,
		"monitors_unlock":   d.monitorsUnlock,
		"unlock":            d.monitorsUnlock,
		"lock_tag":          d.lockTag,
		"unlock_tag":        d.unlockTag,
		"raise":             d.raiseMonitor,
		"raise_monitor":     d.raiseMonitor,
		"shift_to_monitor":  d.shiftToMonitor,
		"monitor_at":        d.monitorAt,
		"use":               d.use,
		"use_index":         d.useIndex,
		"add":               d.addTag,
		"tag_status":        d.tagStatus,
		"get":               d.getSetting,
		"set":               d.setSetting,
		"list_commands":     d.listCommands,
	}
	for name, fn := range builtins {
		d.commands[name] = fn
	}
}

// Register adds or replaces a command.
func (d *Dispatcher) Register(name string, fn Func) {
	d.commands[name] = fn
}

// Commands returns the registered command names in sorted order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes one command and returns its status and output.
func (d *Dispatcher) Run(args []string) (Status, string) {
	var out strings.Builder
	if len(args) == 0 {
		return StatusCommandNotFound, "error: empty command\n"
	}
	fn, ok := d.commands[args[0]]
	if !ok {
		fmt.Fprintf(&out, "error: Command \"%s\" not found\n", args[0])
		return StatusCommandNotFound, out.String()
	}
	status := fn(args, &out)
	if status != StatusOK {
		d.logger.Debug("command failed", "args", args, "status", int(status), "output", strings.TrimSpace(out.String()))
	}
	return status, out.String()
}

func fail(out *strings.Builder, cmd string, status Status, format string, a ...any) Status {
	fmt.Fprintf(out, "%s: ", cmd)
	fmt.Fprintf(out, format, a...)
	out.WriteByte('\n')
	return status
}

func notFound(out *strings.Builder, cmd, monitorExpr string) Status {
	return fail(out, cmd, StatusInvalidArgument, "Monitor \"%s\" not found!", monitorExpr)
}

func (d *Dispatcher) listCommands(_ []string, out *strings.Builder) Status {
	for _, name := range d.Commands() {
		out.WriteString(name)
		out.WriteByte('\n')
	}
	return StatusOK
}
