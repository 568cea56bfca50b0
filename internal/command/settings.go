package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/montile/internal/monitor"
)

type setting struct {
	get func(s monitor.Settings) string
	set func(s *monitor.Settings, value string) error
}

var settings = map[string]setting{
	"swap_monitors_to_get_tag": {
		get: func(s monitor.Settings) string { return formatBool(s.SwapMonitorsToGetTag) },
		set: func(s *monitor.Settings, v string) error { return parseBool(&s.SwapMonitorsToGetTag, v) },
	},
	"smart_frame_surroundings": {
		get: func(s monitor.Settings) string { return formatBool(s.SmartFrameSurroundings) },
		set: func(s *monitor.Settings, v string) error { return parseBool(&s.SmartFrameSurroundings, v) },
	},
	"mouse_recenter_gap": {
		get: func(s monitor.Settings) string { return strconv.Itoa(s.MouseRecenterGap) },
		set: func(s *monitor.Settings, v string) error { return parseNonNegative(&s.MouseRecenterGap, v) },
	},
	"frame_gap": {
		get: func(s monitor.Settings) string { return strconv.Itoa(s.FrameGap) },
		set: func(s *monitor.Settings, v string) error { return parseNonNegative(&s.FrameGap, v) },
	},
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// parseBool accepts the usual spellings plus "toggle".
func parseBool(dst *bool, v string) error {
	switch strings.ToLower(v) {
	case "true", "on", "1":
		*dst = true
	case "false", "off", "0":
		*dst = false
	case "toggle":
		*dst = !*dst
	default:
		return fmt.Errorf("invalid boolean %q", v)
	}
	return nil
}

func parseNonNegative(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid value %q: expected a non-negative integer", v)
	}
	*dst = n
	return nil
}

func (d *Dispatcher) getSetting(args []string, out *strings.Builder) Status {
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	if args[1] == "monitors_locked" {
		fmt.Fprintf(out, "%d\n", d.monitors.LockLevel())
		return StatusOK
	}
	s, ok := settings[args[1]]
	if !ok {
		return fail(out, args[0], StatusSettingNotFound, "Setting \"%s\" not found", args[1])
	}
	out.WriteString(s.get(d.monitors.Settings()))
	out.WriteByte('\n')
	return StatusOK
}

func (d *Dispatcher) setSetting(args []string, out *strings.Builder) Status {
	if len(args) < 3 {
		return StatusNeedMoreArgs
	}
	if args[1] == "monitors_locked" {
		return d.setLockLevel(args, out)
	}
	s, ok := settings[args[1]]
	if !ok {
		return fail(out, args[0], StatusSettingNotFound, "Setting \"%s\" not found", args[1])
	}
	next := d.monitors.Settings()
	if err := s.set(&next, args[2]); err != nil {
		return fail(out, args[0], StatusInvalidArgument, "%v", err)
	}
	d.monitors.SetSettings(next)
	if args[1] == "frame_gap" || args[1] == "smart_frame_surroundings" {
		d.monitors.ApplyAll()
	}
	return StatusOK
}

// setLockLevel moves the lock level to the requested value through Lock and
// Unlock so that reaching zero lays out dirty monitors.
func (d *Dispatcher) setLockLevel(args []string, out *strings.Builder) Status {
	var level int
	if err := parseNonNegative(&level, args[2]); err != nil {
		return fail(out, args[0], StatusInvalidArgument, "%v", err)
	}
	for d.monitors.LockLevel() < level {
		d.monitors.Lock()
	}
	for d.monitors.LockLevel() > level {
		d.monitors.Unlock()
	}
	return StatusOK
}
