package monitor

import "github.com/1broseidon/montile/internal/platform"

// Lock suspends layout passes. Every monitor that would have been laid out
// is marked dirty instead. Locks nest.
func (mgr *Manager) Lock() {
	if mgr.lockLevel < 0 {
		mgr.lockLevel = 0
	}
	mgr.lockLevel++
}

// Unlock releases one Lock. Releasing the last one lays out every dirty
// monitor exactly once.
func (mgr *Manager) Unlock() {
	if mgr.lockLevel < 1 {
		mgr.lockLevel = 1
	}
	mgr.lockLevel--
	if mgr.lockLevel > 0 {
		return
	}
	for _, m := range mgr.monitors {
		if m.dirty {
			mgr.applyLayout(m)
		}
	}
}

// LockLevel returns the current nesting depth of Lock.
func (mgr *Manager) LockLevel() int {
	return mgr.lockLevel
}

// ApplyLayout lays out m, or marks it dirty while monitors are locked.
func (mgr *Manager) ApplyLayout(m *Monitor) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	mgr.applyLayout(m)
	return nil
}

// ApplyAll lays out every monitor.
func (mgr *Manager) ApplyAll() {
	for _, m := range mgr.monitors {
		mgr.applyLayout(m)
	}
}

func (mgr *Manager) applyLayout(m *Monitor) {
	if m == nil {
		return
	}
	if mgr.lockLevel > 0 {
		m.dirty = true
		return
	}
	m.dirty = false

	area := m.UsableRect()
	gap := mgr.settings.FrameGap
	if !mgr.settings.SmartFrameSurroundings || mgr.layout.IsSplit(m.tag) {
		// Frames add their gap on the right and bottom, so only the
		// top-left edge needs it here.
		area.X += gap
		area.Y += gap
		area.Width -= gap
		area.Height -= gap
	}

	mgr.restack(m)
	mgr.layout.ApplyLayout(m.tag, area)
	if !m.lockFrames && !m.tag.Floating {
		mgr.layout.UpdateFrameVisibility(m.tag)
	}
	if m == mgr.Current() {
		mgr.layout.Focus(m.tag)
	}
	mgr.display.DiscardEnterEvents()
}

// restack orders the placeholder and the tag's windows. A focused fullscreen
// client is raised above everything instead.
func (mgr *Manager) restack(m *Monitor) {
	windows := m.StackWindows(false)
	if win, ok := mgr.layout.FocusedWindow(m.tag); ok && mgr.layout.IsFullscreen(m.tag, win) {
		mgr.display.Raise(win)
		windows = without(windows, win)
	}
	mgr.display.Restack(windows)
}

func without(windows []platform.WindowID, id platform.WindowID) []platform.WindowID {
	out := windows[:0]
	for _, w := range windows {
		if w != id {
			out = append(out, w)
		}
	}
	return out
}
