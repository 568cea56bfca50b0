package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/monitor"
	"github.com/1broseidon/montile/internal/platform"
)

// monitorError turns a core error into a status and diagnostic.
func (d *Dispatcher) monitorError(out *strings.Builder, cmd string, err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, monitor.ErrInvalidName):
		return fail(out, cmd, StatusInvalidArgument, "The monitor name may not start with a number")
	case errors.Is(err, monitor.ErrNameCollision):
		return fail(out, cmd, StatusInvalidArgument, "A monitor with the same name already exists")
	case errors.Is(err, monitor.ErrOutOfRange):
		return fail(out, cmd, StatusInvalidArgument, "Index needs to be between 0 and %d", d.monitors.Count()-1)
	case errors.Is(err, monitor.ErrLastMonitor):
		return fail(out, cmd, StatusForbidden, "Can't remove the last monitor")
	case errors.Is(err, monitor.ErrNoFreeTag):
		return fail(out, cmd, StatusTagInUse, "There are not enough free tags")
	case errors.Is(err, monitor.ErrTagInUse):
		return fail(out, cmd, StatusTagInUse, "%v", err)
	case errors.Is(err, monitor.ErrTooSmall):
		return fail(out, cmd, StatusInvalidArgument, "Rectangle is too small")
	case errors.Is(err, monitor.ErrNoRects):
		return fail(out, cmd, StatusInvalidArgument, "Need at least one rectangle")
	case errors.Is(err, monitor.ErrLocked):
		return fail(out, cmd, StatusUnknownError, "Could not change tag (maybe monitor is locked?)")
	default:
		return fail(out, cmd, StatusUnknownError, "%v", err)
	}
}

// optionalMonitor resolves args[1] when present, else the selected monitor.
func (d *Dispatcher) optionalMonitor(args []string) (*monitor.Monitor, bool) {
	if len(args) < 2 {
		m := d.monitors.Current()
		return m, m != nil
	}
	m := d.monitors.Resolve(args[1])
	return m, m != nil
}

// parsePadding overrides base with the given up, right, down and left
// values. Empty strings keep the existing value.
func parsePadding(base platform.Padding, args []string) (platform.Padding, error) {
	fields := []*int{&base.Up, &base.Right, &base.Down, &base.Left}
	for i, arg := range args {
		if i >= len(fields) {
			break
		}
		if arg == "" {
			continue
		}
		v, err := strconv.Atoi(arg)
		if err != nil || v < 0 {
			return base, fmt.Errorf("invalid padding %q", arg)
		}
		*fields[i] = v
	}
	return base, nil
}

func (d *Dispatcher) listMonitors(_ []string, out *strings.Builder) Status {
	selected := d.monitors.Selected()
	for i, m := range d.monitors.Monitors() {
		tag := "???"
		if m.Tag() != nil {
			tag = m.Tag().Name
		}
		named := ""
		if m.Name() != "" {
			named = fmt.Sprintf(", named \"%s\"", m.Name())
		}
		focus := ""
		if i == selected {
			focus = " [FOCUS]"
		}
		locked := ""
		if m.TagLocked() {
			locked = " [LOCKED]"
		}
		fmt.Fprintf(out, "%d: %s with tag \"%s\"%s%s%s\n", i, m.Rect(), tag, named, focus, locked)
	}
	return StatusOK
}

func (d *Dispatcher) listPadding(args []string, out *strings.Builder) Status {
	m, ok := d.optionalMonitor(args)
	if !ok {
		return notFound(out, args[0], args[1])
	}
	p := m.Padding()
	fmt.Fprintf(out, "%d %d %d %d\n", p.Up, p.Right, p.Down, p.Left)
	return StatusOK
}

func (d *Dispatcher) addMonitor(args []string, out *strings.Builder) Status {
	// add_monitor RECT [TAG [NAME]]
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	rect, err := geom.Parse(args[1])
	if err != nil {
		return fail(out, args[0], StatusInvalidArgument, "Invalid rectangle \"%s\"", args[1])
	}

	t := d.monitors.UnusedTag()
	if len(args) > 2 && args[2] != "" {
		t = d.tags.Find(args[2])
		if t == nil {
			return fail(out, args[0], StatusInvalidArgument, "The tag \"%s\" does not exist", args[2])
		}
		if d.monitors.IsVisible(t) {
			return fail(out, args[0], StatusTagInUse, "The tag \"%s\" is already viewed on a monitor", args[2])
		}
	} else if t == nil {
		return fail(out, args[0], StatusTagInUse, "There are not enough free tags")
	}

	name := ""
	if len(args) > 3 {
		name = args[3]
		if name == "" {
			return fail(out, args[0], StatusInvalidArgument, "An empty monitor name is not permitted")
		}
	}
	_, err = d.monitors.AddMonitor(rect, t, name)
	return d.monitorError(out, args[0], err)
}

func (d *Dispatcher) removeMonitor(args []string, out *strings.Builder) Status {
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	index, ok := d.monitors.ResolveIndex(args[1])
	if !ok {
		return notFound(out, args[0], args[1])
	}
	return d.monitorError(out, args[0], d.monitors.RemoveMonitor(index))
}

func (d *Dispatcher) moveMonitor(args []string, out *strings.Builder) Status {
	// move_monitor INDEX RECT [PADUP [PADRIGHT [PADDOWN [PADLEFT]]]]
	if len(args) < 3 {
		return StatusNeedMoreArgs
	}
	m := d.monitors.Resolve(args[1])
	if m == nil {
		return notFound(out, args[0], args[1])
	}
	rect, err := geom.Parse(args[2])
	if err != nil {
		return fail(out, args[0], StatusInvalidArgument, "Invalid rectangle \"%s\"", args[2])
	}
	pad, err := parsePadding(m.Padding(), args[3:])
	if err != nil {
		return fail(out, args[0], StatusInvalidArgument, "%v", err)
	}
	return d.monitorError(out, args[0], d.monitors.MoveMonitor(m, rect, pad))
}

func (d *Dispatcher) renameMonitor(args []string, out *strings.Builder) Status {
	if len(args) < 3 {
		return StatusNeedMoreArgs
	}
	m := d.monitors.Resolve(args[1])
	if m == nil {
		return notFound(out, args[0], args[1])
	}
	return d.monitorError(out, args[0], d.monitors.RenameMonitor(m, args[2]))
}

func (d *Dispatcher) monitorRect(args []string, out *strings.Builder) Status {
	// monitor_rect [-p] [INDEX]
	withPad := false
	rest := args[1:]
	if len(rest) > 0 && rest[0] == "-p" {
		withPad = true
		rest = rest[1:]
	} else if len(rest) > 1 {
		return fail(out, args[0], StatusInvalidArgument, "Invalid argument \"%s\"", rest[0])
	}

	m := d.monitors.Current()
	if len(rest) > 0 {
		m = d.monitors.Resolve(rest[0])
		if m == nil {
			return notFound(out, args[0], rest[0])
		}
	}
	if m == nil {
		return fail(out, args[0], StatusUnknownError, "No monitor available")
	}
	rect := m.Rect()
	if withPad {
		rect = m.UsableRect()
	}
	fmt.Fprintf(out, "%d %d %d %d", rect.X, rect.Y, rect.Width, rect.Height)
	return StatusOK
}

func (d *Dispatcher) setPad(args []string, out *strings.Builder) Status {
	// set_pad INDEX [UP [RIGHT [DOWN [LEFT]]]]
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	m := d.monitors.Resolve(args[1])
	if m == nil {
		return notFound(out, args[0], args[1])
	}
	pad, err := parsePadding(m.Padding(), args[2:])
	if err != nil {
		return fail(out, args[0], StatusInvalidArgument, "%v", err)
	}
	return d.monitorError(out, args[0], d.monitors.SetPadding(m, pad))
}

func (d *Dispatcher) setMonitorRects(args []string, out *strings.Builder) Status {
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	rects, err := geom.ParseAll(args[1:])
	if err != nil {
		return fail(out, args[0], StatusInvalidArgument, "%v", err)
	}
	return d.monitorError(out, args[0], d.monitors.ReconcileRects(rects))
}

func (d *Dispatcher) detectMonitors(args []string, out *strings.Builder) Status {
	if d.detect == nil {
		return fail(out, args[0], StatusUnknownError, "Monitor detection is not available")
	}
	rects, err := d.detect()
	if err != nil {
		return fail(out, args[0], StatusUnknownError, "%v", err)
	}
	return d.monitorError(out, args[0], d.monitors.ReconcileRects(rects))
}

func (d *Dispatcher) disjoinRects(args []string, out *strings.Builder) Status {
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	rects, err := geom.ParseAll(args[1:])
	if err != nil {
		return fail(out, args[0], StatusInvalidArgument, "%v", err)
	}
	for _, r := range geom.Disjoin(rects) {
		out.WriteString(r.String())
		out.WriteByte('\n')
	}
	return StatusOK
}

func (d *Dispatcher) monitorFocus(args []string, out *strings.Builder) Status {
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	index, ok := d.monitors.ResolveIndex(args[1])
	if !ok {
		return notFound(out, args[0], args[1])
	}
	d.monitors.FocusIndex(index)
	return StatusOK
}

func (d *Dispatcher) monitorCycle(args []string, out *strings.Builder) Status {
	delta := 1
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fail(out, args[0], StatusInvalidArgument, "Invalid delta \"%s\"", args[1])
		}
		delta = v
	}
	d.monitors.Cycle(delta)
	return StatusOK
}

func (d *Dispatcher) monitorsLock(_ []string, _ *strings.Builder) Status {
	d.monitors.Lock()
	return StatusOK
}

func (d *Dispatcher) monitorsUnlock(_ []string, _ *strings.Builder) Status {
	d.monitors.Unlock()
	return StatusOK
}

func (d *Dispatcher) lockTag(args []string, out *strings.Builder) Status {
	m, ok := d.optionalMonitor(args)
	if !ok {
		return notFound(out, args[0], args[1])
	}
	return d.monitorError(out, args[0], d.monitors.LockTag(m))
}

func (d *Dispatcher) unlockTag(args []string, out *strings.Builder) Status {
	m, ok := d.optionalMonitor(args)
	if !ok {
		return notFound(out, args[0], args[1])
	}
	return d.monitorError(out, args[0], d.monitors.UnlockTag(m))
}

func (d *Dispatcher) raiseMonitor(args []string, out *strings.Builder) Status {
	m, ok := d.optionalMonitor(args)
	if !ok {
		return notFound(out, args[0], args[1])
	}
	return d.monitorError(out, args[0], d.monitors.Raise(m))
}

func (d *Dispatcher) shiftToMonitor(args []string, out *strings.Builder) Status {
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	m := d.monitors.Resolve(args[1])
	if m == nil {
		return fail(out, args[0], StatusInvalidArgument, "Invalid monitor \"%s\"", args[1])
	}
	return d.monitorError(out, args[0], d.monitors.ShiftToMonitor(m))
}

func (d *Dispatcher) monitorAt(args []string, out *strings.Builder) Status {
	if len(args) < 3 {
		return StatusNeedMoreArgs
	}
	x, errX := strconv.Atoi(args[1])
	y, errY := strconv.Atoi(args[2])
	if errX != nil || errY != nil {
		return fail(out, args[0], StatusInvalidArgument, "Invalid coordinates \"%s\" \"%s\"", args[1], args[2])
	}
	m := d.monitors.MonitorAt(x, y)
	if m == nil {
		return fail(out, args[0], StatusInvalidArgument, "No monitor at %d,%d", x, y)
	}
	fmt.Fprintf(out, "%d\n", d.monitors.IndexOf(m))
	return StatusOK
}
