package monitor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/tags"
)

// ReconcileRects makes the monitor set match rects: existing monitors are
// moved, missing ones are created on unused tags and surplus ones are
// removed from the end. When no unused tag is left for a new monitor the
// changes made so far stay in place and ErrNoFreeTag is returned.
func (mgr *Manager) ReconcileRects(rects []geom.Rect) error {
	if len(rects) == 0 {
		return ErrNoRects
	}

	i := 0
	for ; i < len(mgr.monitors) && i < len(rects); i++ {
		mgr.monitors[i].rect = rects[i]
	}
	for ; i < len(rects); i++ {
		t := mgr.UnusedTag()
		if t == nil {
			return fmt.Errorf("%w: cannot create monitor %d", ErrNoFreeTag, i)
		}
		if _, err := mgr.insertMonitor(rects[i], t, ""); err != nil {
			return err
		}
		mgr.layout.Show(t)
	}
	for len(mgr.monitors) > len(rects) {
		if err := mgr.RemoveMonitor(len(mgr.monitors) - 1); err != nil {
			return err
		}
	}

	mgr.ApplyAll()
	return nil
}

// EnsureMonitorsAvailable creates a monitor covering screen when there is
// none, creating a tag for it if every tag is taken.
func (mgr *Manager) EnsureMonitorsAvailable(screen geom.Rect) error {
	if len(mgr.monitors) > 0 {
		return nil
	}
	t := mgr.tags.EnsureUnused(mgr.IsVisible)
	if t == nil {
		return ErrNoFreeTag
	}
	m, err := mgr.insertMonitor(screen, t, "")
	if err != nil {
		return err
	}
	mgr.selected = 0
	mgr.layout.Show(t)
	mgr.applyLayout(m)
	mgr.notifier.UpdateCurrentDesktop(t)
	return nil
}

// Detector reports monitor geometries from one mechanism.
type Detector struct {
	Name   string
	Detect func() ([]geom.Rect, error)
}

// ErrNoDetection is returned when no detector produced any rectangle.
var ErrNoDetection = errors.New("no monitor detection mechanism succeeded")

// DetectRects runs the detectors in order and returns the first non-empty
// result with exact duplicates removed, along with the detector's name.
func DetectRects(detectors []Detector, logger *slog.Logger) ([]geom.Rect, string, error) {
	var failures []string
	for _, d := range detectors {
		rects, err := d.Detect()
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", d.Name, err))
			if logger != nil {
				logger.Debug("monitor detection failed", "detector", d.Name, "error", err)
			}
			continue
		}
		rects = uniqueRects(rects)
		if len(rects) == 0 {
			failures = append(failures, d.Name+": no screens")
			continue
		}
		return rects, d.Name, nil
	}
	if len(failures) == 0 {
		return nil, "", ErrNoDetection
	}
	return nil, "", fmt.Errorf("%w (%s)", ErrNoDetection, strings.Join(failures, "; "))
}

func uniqueRects(rects []geom.Rect) []geom.Rect {
	out := make([]geom.Rect, 0, len(rects))
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		dup := false
		for _, existing := range out {
			if existing == r {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}

// TagsInUse returns the tags shown on monitors, in monitor order.
func (mgr *Manager) TagsInUse() []*tags.Tag {
	out := make([]*tags.Tag, len(mgr.monitors))
	for i, m := range mgr.monitors {
		out[i] = m.tag
	}
	return out
}
