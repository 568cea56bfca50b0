package monitor

// FocusIndex selects the monitor at index, clamped into range. The pointer
// position on the previous monitor is remembered. Unless the pointer already
// lies on the new monitor it is warped to the position remembered there, or
// to its center when that position is within MouseRecenterGap of an edge.
func (mgr *Manager) FocusIndex(index int) {
	n := len(mgr.monitors)
	if n == 0 {
		return
	}
	index = clamp(index, 0, n-1)
	if index == mgr.selected {
		return
	}

	old := mgr.Current()
	next := mgr.monitors[index]

	px, py, havePointer := mgr.display.Pointer()
	if havePointer && old != nil {
		old.saveMouse(px, py)
	}

	mgr.selected = index
	mgr.layout.Focus(next.tag)
	mgr.applyLayout(old)
	mgr.applyLayout(next)

	if !havePointer || !next.rect.Contains(px, py) {
		if mgr.needsRecenter(next) {
			next.mouse = Point{X: next.rect.Width / 2, Y: next.rect.Height / 2}
		}
		mgr.display.WarpPointer(next.rect.X+next.mouse.X, next.rect.Y+next.mouse.Y)
		mgr.display.DiscardEnterEvents()
	}

	mgr.logger.Debug("monitor focused", "index", index, "tag", next.tag.Name)

	mgr.notifier.UpdateCurrentDesktop(next.tag)
	mgr.notifier.TagChanged(next.tag, index)
}

func (mgr *Manager) needsRecenter(m *Monitor) bool {
	gap := mgr.settings.MouseRecenterGap
	mx, my := m.mouse.X, m.mouse.Y
	return min(mx, abs(mx-m.rect.Width)) < gap || min(my, abs(my-m.rect.Height)) < gap
}

// Cycle moves the selection by delta, wrapping around.
func (mgr *Manager) Cycle(delta int) {
	n := len(mgr.monitors)
	if n == 0 {
		return
	}
	mgr.FocusIndex(mod(mgr.selected+delta, n))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
