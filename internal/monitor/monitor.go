package monitor

import (
	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/platform"
	"github.com/1broseidon/montile/internal/stack"
	"github.com/1broseidon/montile/internal/tags"
)

// Point is a position relative to a monitor's top-left corner.
type Point struct {
	X int
	Y int
}

// Monitor is a rectangular region of the screen that displays one tag.
type Monitor struct {
	name       string
	rect       geom.Rect
	pad        platform.Padding
	tag        *tags.Tag
	tagLocked  bool
	lockFrames bool
	dirty      bool
	mouse      Point
	window     platform.WindowID
	slice      *stack.Slice
}

// Name returns the monitor name, empty when unnamed.
func (m *Monitor) Name() string { return m.name }

// Rect returns the full monitor geometry.
func (m *Monitor) Rect() geom.Rect { return m.rect }

// Padding returns the space reserved along each edge.
func (m *Monitor) Padding() platform.Padding { return m.pad }

// Tag returns the tag shown on the monitor.
func (m *Monitor) Tag() *tags.Tag { return m.tag }

// TagLocked reports whether the monitor refuses tag changes.
func (m *Monitor) TagLocked() bool { return m.tagLocked }

// Dirty reports whether a layout pass is pending.
func (m *Monitor) Dirty() bool { return m.dirty }

// MousePosition returns the remembered pointer position.
func (m *Monitor) MousePosition() Point { return m.mouse }

// StackingWindow returns the placeholder window anchoring the monitor in
// the stacking order.
func (m *Monitor) StackingWindow() platform.WindowID { return m.window }

// UsableRect returns the monitor rectangle minus its padding.
func (m *Monitor) UsableRect() geom.Rect {
	return m.rect.Shrink(m.pad.Up, m.pad.Right, m.pad.Down, m.pad.Left)
}

// StackWindows lists the placeholder window followed by the tag's windows,
// top first. The placeholder is left out when only clients are requested.
func (m *Monitor) StackWindows(onlyClients bool) []platform.WindowID {
	var out []platform.WindowID
	if !onlyClients {
		out = append(out, m.window)
	}
	if m.tag != nil {
		out = append(out, m.tag.Stack.Windows(onlyClients)...)
	}
	return out
}

// saveMouse stores the pointer position (x, y) in root coordinates relative
// to the monitor, clamped to its bounds.
func (m *Monitor) saveMouse(x, y int) {
	m.mouse = Point{
		X: clamp(x-m.rect.X, 0, m.rect.Width-1),
		Y: clamp(y-m.rect.Y, 0, m.rect.Height-1),
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
