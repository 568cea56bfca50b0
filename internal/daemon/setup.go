package daemon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/montile/internal/command"
	"github.com/1broseidon/montile/internal/config"
	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/monitor"
	"github.com/1broseidon/montile/internal/platform"
)

// detectors lists the detection mechanisms in order of preference.
func (d *Daemon) detectors() []monitor.Detector {
	return []monitor.Detector{
		{Name: "xinerama", Detect: d.backend.Heads},
		{Name: "randr", Detect: func() ([]geom.Rect, error) {
			displays, err := d.backend.Displays()
			if err != nil {
				return nil, err
			}
			rects := make([]geom.Rect, 0, len(displays))
			for _, disp := range displays {
				rects = append(rects, disp.Bounds)
			}
			return rects, nil
		}},
		{Name: "screen", Detect: func() ([]geom.Rect, error) {
			r := d.backend.ScreenRect()
			if r.Empty() {
				return nil, errors.New("root window geometry unavailable")
			}
			return []geom.Rect{r}, nil
		}},
	}
}

func (d *Daemon) detect() ([]geom.Rect, error) {
	rects, source, err := monitor.DetectRects(d.detectors(), d.logger)
	if err != nil {
		return nil, err
	}
	d.logger.Info("monitors detected", "source", source, "count", len(rects))
	return rects, nil
}

// setupMonitors creates the initial monitors from the config, from
// detection or from the root window, in that order.
func (d *Daemon) setupMonitors() error {
	d.monitors.Lock()
	defer d.monitors.Unlock()

	switch {
	case len(d.cfg.Monitors) > 0:
		if err := d.monitors.ReconcileRects(d.cfg.MonitorRects()); err != nil {
			d.logger.Warn("configured monitors could not all be created", "error", err)
		}
		d.applyMonitorConfig(d.cfg.Monitors)
	case d.cfg.DetectMonitorsOnStart:
		rects, err := d.detect()
		if err != nil {
			d.logger.Warn("monitor detection failed", "error", err)
			break
		}
		if err := d.monitors.ReconcileRects(rects); err != nil {
			d.logger.Warn("detected monitors could not all be created", "error", err)
		}
	}

	if err := d.monitors.EnsureMonitorsAvailable(d.backend.ScreenRect()); err != nil {
		return fmt.Errorf("failed to create a monitor: %w", err)
	}
	if d.cfg.PadFromStruts {
		for _, m := range d.monitors.Monitors() {
			d.padFromStruts(m)
		}
	}
	return nil
}

func (d *Daemon) applyMonitorConfig(monitors []config.MonitorConfig) {
	for i, mc := range monitors {
		m := d.monitors.ByIndex(i)
		if m == nil {
			return
		}
		if mc.Name != "" {
			if err := d.monitors.RenameMonitor(m, mc.Name); err != nil {
				d.logger.Warn("cannot name monitor", "index", i, "name", mc.Name, "error", err)
			}
		}
		if mc.Tag != "" {
			if err := d.monitors.AssignTag(m, d.tags.Find(mc.Tag)); err != nil {
				d.logger.Warn("cannot show configured tag", "index", i, "tag", mc.Tag, "error", err)
			}
		}
		if len(mc.Pad) > 0 {
			if err := d.monitors.SetPadding(m, padFrom(mc.Pad)); err != nil {
				d.logger.Warn("cannot pad monitor", "index", i, "error", err)
			}
		}
	}
}

// padFrom reads up to four values in up, right, down, left order.
func padFrom(values []int) platform.Padding {
	var p platform.Padding
	fields := []*int{&p.Up, &p.Right, &p.Down, &p.Left}
	for i, v := range values {
		if i < len(fields) {
			*fields[i] = v
		}
	}
	return p
}

func (d *Daemon) padFromStruts(m *monitor.Monitor) error {
	pad, err := d.backend.DockPadding(m.Rect())
	if err != nil {
		d.logger.Debug("no dock struts", "monitor", d.monitors.IndexOf(m), "error", err)
		return err
	}
	return d.monitors.SetPadding(m, pad)
}

// padFromStrutsCommand sets the pads of one or every monitor from the
// struts of dock windows.
func (d *Daemon) padFromStrutsCommand(args []string, out *strings.Builder) command.Status {
	targets := d.monitors.Monitors()
	if len(args) > 1 {
		m := d.monitors.Resolve(args[1])
		if m == nil {
			fmt.Fprintf(out, "%s: Monitor \"%s\" not found!\n", args[0], args[1])
			return command.StatusInvalidArgument
		}
		targets = []*monitor.Monitor{m}
	}
	status := command.StatusOK
	for _, m := range targets {
		if err := d.padFromStruts(m); err != nil {
			fmt.Fprintf(out, "%s: %v\n", args[0], err)
			status = command.StatusUnknownError
		}
	}
	return status
}
