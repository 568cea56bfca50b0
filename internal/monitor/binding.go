package monitor

import (
	"fmt"

	"github.com/1broseidon/montile/internal/tags"
)

type bindingOutcome int

const (
	// bindSwitch shows the tag and hides the previous one.
	bindSwitch bindingOutcome = iota
	// bindSwap exchanges tags with the monitor already showing the tag.
	bindSwap
	// bindCollision leaves everything as is.
	bindCollision
	// bindLocked refuses the change.
	bindLocked
	// bindLockedRefocus refuses the change and focuses the monitor that
	// already shows the tag.
	bindLockedRefocus
)

type bindingKey struct {
	shownElsewhere bool
	swapEnabled    bool
	targetLocked   bool
	otherLocked    bool
}

// bindingTable lists every combination explicitly. otherLocked only matters
// when the tag is shown elsewhere.
var bindingTable = map[bindingKey]bindingOutcome{
	{shownElsewhere: false, swapEnabled: false, targetLocked: false, otherLocked: false}: bindSwitch,
	{shownElsewhere: false, swapEnabled: false, targetLocked: false, otherLocked: true}:  bindSwitch,
	{shownElsewhere: false, swapEnabled: true, targetLocked: false, otherLocked: false}:  bindSwitch,
	{shownElsewhere: false, swapEnabled: true, targetLocked: false, otherLocked: true}:   bindSwitch,
	{shownElsewhere: false, swapEnabled: false, targetLocked: true, otherLocked: false}:  bindLocked,
	{shownElsewhere: false, swapEnabled: false, targetLocked: true, otherLocked: true}:   bindLocked,
	{shownElsewhere: false, swapEnabled: true, targetLocked: true, otherLocked: false}:   bindLocked,
	{shownElsewhere: false, swapEnabled: true, targetLocked: true, otherLocked: true}:    bindLocked,
	{shownElsewhere: true, swapEnabled: false, targetLocked: false, otherLocked: false}:  bindCollision,
	{shownElsewhere: true, swapEnabled: false, targetLocked: false, otherLocked: true}:   bindCollision,
	{shownElsewhere: true, swapEnabled: true, targetLocked: false, otherLocked: false}:   bindSwap,
	{shownElsewhere: true, swapEnabled: true, targetLocked: false, otherLocked: true}:    bindLockedRefocus,
	{shownElsewhere: true, swapEnabled: false, targetLocked: true, otherLocked: false}:   bindLockedRefocus,
	{shownElsewhere: true, swapEnabled: false, targetLocked: true, otherLocked: true}:    bindLockedRefocus,
	{shownElsewhere: true, swapEnabled: true, targetLocked: true, otherLocked: false}:    bindLockedRefocus,
	{shownElsewhere: true, swapEnabled: true, targetLocked: true, otherLocked: true}:     bindLockedRefocus,
}

func decideBinding(k bindingKey) bindingOutcome {
	return bindingTable[k]
}

// AssignTag shows t on m. Assigning the tag m already shows is a no-op.
// ErrLocked is returned when m's tag is locked, or when swapping is enabled
// and the monitor showing t is locked; in both cases focus moves to the
// monitor showing t if there is one. ErrCollision is returned when t is
// shown elsewhere and swapping is disabled.
func (mgr *Manager) AssignTag(m *Monitor, t *tags.Tag) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	if t == nil {
		return ErrInvalidTag
	}
	if m.tag == t {
		return nil
	}

	other := mgr.ByTag(t)
	key := bindingKey{
		shownElsewhere: other != nil,
		swapEnabled:    mgr.settings.SwapMonitorsToGetTag,
		targetLocked:   m.tagLocked,
		otherLocked:    other != nil && other.tagLocked,
	}

	switch decideBinding(key) {
	case bindLocked:
		return fmt.Errorf("%w: monitor %d", ErrLocked, mgr.IndexOf(m))
	case bindLockedRefocus:
		mgr.FocusIndex(mgr.IndexOf(other))
		return fmt.Errorf("%w: tag %q stays on monitor %d", ErrLocked, t.Name, mgr.IndexOf(other))
	case bindCollision:
		return fmt.Errorf("%w: tag %q is on monitor %d", ErrCollision, t.Name, mgr.IndexOf(other))
	case bindSwap:
		mgr.swapTags(m, other, t)
		return nil
	default:
		mgr.switchTag(m, t)
		return nil
	}
}

func (mgr *Manager) swapTags(m, other *Monitor, t *tags.Tag) {
	other.tag = m.tag
	m.tag = t

	mgr.layout.Focus(t)
	mgr.restack(other)
	mgr.restack(m)
	mgr.applyLayout(other)
	mgr.applyLayout(m)
	mgr.display.DiscardEnterEvents()

	mgr.logger.Debug("tags swapped", "monitor", mgr.IndexOf(m), "other", mgr.IndexOf(other), "tag", t.Name)

	mgr.notifier.UpdateCurrentDesktop(mgr.Current().tag)
	mgr.notifier.TagChanged(other.tag, mgr.IndexOf(other))
	mgr.notifier.TagChanged(t, mgr.IndexOf(m))
}

func (mgr *Manager) switchTag(m *Monitor, t *tags.Tag) {
	old := m.tag
	m.tag = t

	// Arrange the new tag before mapping it and hide the old one last so
	// the monitor is never empty.
	mgr.layout.Focus(t)
	mgr.restack(m)
	m.lockFrames = true
	mgr.applyLayout(m)
	m.lockFrames = false

	mgr.layout.Show(t)
	if !t.Floating {
		mgr.layout.UpdateFrameVisibility(t)
	}
	mgr.layout.Hide(old)
	mgr.layout.Focus(t)
	mgr.display.DiscardEnterEvents()

	mgr.logger.Debug("tag switched", "monitor", mgr.IndexOf(m), "from", old.Name, "to", t.Name)

	mgr.notifier.UpdateCurrentDesktop(mgr.Current().tag)
	mgr.notifier.TagChanged(t, mgr.IndexOf(m))
}
