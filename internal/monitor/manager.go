// Package monitor manages the set of monitors, the tag each one shows, the
// selected monitor and deferred re-layout. A Manager is not safe for
// concurrent use; callers serialize access.
package monitor

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/platform"
	"github.com/1broseidon/montile/internal/stack"
	"github.com/1broseidon/montile/internal/tags"
)

// MinSize is the smallest width and height a moved monitor may have.
const MinSize = 32

// Layout positions, shows and focuses the windows of a tag.
type Layout interface {
	ApplyLayout(t *tags.Tag, area geom.Rect)
	UpdateFrameVisibility(t *tags.Tag)
	Show(t *tags.Tag)
	Hide(t *tags.Tag)
	Focus(t *tags.Tag)
	FocusedWindow(t *tags.Tag) (platform.WindowID, bool)
	IsFullscreen(t *tags.Tag, id platform.WindowID) bool
	IsSplit(t *tags.Tag) bool
	MoveFocusedClient(from, to *tags.Tag) bool
}

// TagSource provides the tags monitors can show.
type TagSource interface {
	All() []*tags.Tag
	EnsureUnused(inUse func(*tags.Tag) bool) *tags.Tag
}

// Display is the window-system access the manager needs.
type Display interface {
	CreateStackingWindow() (platform.WindowID, error)
	DestroyWindow(id platform.WindowID)
	Pointer() (x, y int, ok bool)
	WarpPointer(x, y int)
	Restack(windows []platform.WindowID)
	Raise(id platform.WindowID)
	DiscardEnterEvents()
}

// Notifier receives tag and desktop changes.
type Notifier interface {
	TagChanged(t *tags.Tag, monitor int)
	UpdateCurrentDesktop(t *tags.Tag)
}

// Settings are the runtime-adjustable options of the manager.
type Settings struct {
	SwapMonitorsToGetTag   bool
	MouseRecenterGap       int
	FrameGap               int
	SmartFrameSurroundings bool
}

// Config wires a Manager to its collaborators.
type Config struct {
	Layout   Layout
	Tags     TagSource
	Display  Display
	Notifier Notifier
	Settings Settings
	Logger   *slog.Logger
}

// Manager owns the monitors and the global selection.
type Manager struct {
	monitors  []*Monitor
	selected  int
	lockLevel int
	settings  Settings
	stack     *stack.Stack

	layout   Layout
	tags     TagSource
	display  Display
	notifier Notifier
	logger   *slog.Logger
}

type nopNotifier struct{}

func (nopNotifier) TagChanged(*tags.Tag, int)      {}
func (nopNotifier) UpdateCurrentDesktop(*tags.Tag) {}

// NewManager creates a manager without monitors.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Manager{
		settings: cfg.Settings,
		stack:    stack.New(),
		layout:   cfg.Layout,
		tags:     cfg.Tags,
		display:  cfg.Display,
		notifier: notifier,
		logger:   logger,
	}
}

// Settings returns the current settings.
func (mgr *Manager) Settings() Settings {
	return mgr.settings
}

// SetSettings replaces the settings. Geometry-affecting changes take effect
// on the next layout pass.
func (mgr *Manager) SetSettings(s Settings) {
	mgr.settings = s
}

// Count returns the number of monitors.
func (mgr *Manager) Count() int {
	return len(mgr.monitors)
}

// Monitors returns the monitors in index order.
func (mgr *Manager) Monitors() []*Monitor {
	return append([]*Monitor(nil), mgr.monitors...)
}

// Selected returns the index of the selected monitor.
func (mgr *Manager) Selected() int {
	return mgr.selected
}

// Current returns the selected monitor, or nil without monitors.
func (mgr *Manager) Current() *Monitor {
	return mgr.ByIndex(mgr.selected)
}

// ByIndex returns the monitor at index, or nil.
func (mgr *Manager) ByIndex(index int) *Monitor {
	if index < 0 || index >= len(mgr.monitors) {
		return nil
	}
	return mgr.monitors[index]
}

// ByName returns the monitor with the given name, or nil.
func (mgr *Manager) ByName(name string) *Monitor {
	if name == "" {
		return nil
	}
	for _, m := range mgr.monitors {
		if m.name == name {
			return m
		}
	}
	return nil
}

// ByTag returns the monitor showing t, or nil.
func (mgr *Manager) ByTag(t *tags.Tag) *Monitor {
	for _, m := range mgr.monitors {
		if m.tag == t {
			return m
		}
	}
	return nil
}

// IndexOf returns the index of m, or -1.
func (mgr *Manager) IndexOf(m *Monitor) int {
	for i, existing := range mgr.monitors {
		if existing == m {
			return i
		}
	}
	return -1
}

// IsVisible reports whether t is shown on any monitor.
func (mgr *Manager) IsVisible(t *tags.Tag) bool {
	return mgr.ByTag(t) != nil
}

// ResolveIndex turns a monitor expression into an index. The empty string
// is the selected monitor, "+N" and "-N" are relative to it and wrap,
// a leading digit denotes an absolute index and anything else is a name.
func (mgr *Manager) ResolveIndex(expr string) (int, bool) {
	n := len(mgr.monitors)
	if n == 0 {
		return 0, false
	}
	if expr == "" {
		return mgr.selected, true
	}
	switch {
	case expr[0] == '+' || expr[0] == '-':
		delta, err := strconv.Atoi(expr)
		if err != nil {
			return 0, false
		}
		return mod(mgr.selected+delta, n), true
	case expr[0] >= '0' && expr[0] <= '9':
		index, err := strconv.Atoi(expr)
		if err != nil || index >= n {
			return 0, false
		}
		return index, true
	default:
		if m := mgr.ByName(expr); m != nil {
			return mgr.IndexOf(m), true
		}
		return 0, false
	}
}

// Resolve is ResolveIndex returning the monitor itself.
func (mgr *Manager) Resolve(expr string) *Monitor {
	index, ok := mgr.ResolveIndex(expr)
	if !ok {
		return nil
	}
	return mgr.monitors[index]
}

// MonitorAt returns the monitor whose padded area contains the point.
func (mgr *Manager) MonitorAt(x, y int) *Monitor {
	for _, m := range mgr.monitors {
		if m.UsableRect().Contains(x, y) {
			return m
		}
	}
	return nil
}

// UnusedTag returns the first tag not shown on any monitor, or nil.
func (mgr *Manager) UnusedTag() *tags.Tag {
	for _, t := range mgr.tags.All() {
		if !mgr.IsVisible(t) {
			return t
		}
	}
	return nil
}

// StackWindows flattens the monitor stacking order, top first.
func (mgr *Manager) StackWindows(onlyClients bool) []platform.WindowID {
	return mgr.stack.Windows(onlyClients)
}

// AddMonitor creates a monitor showing t, lays it out and announces the tag.
// An empty name leaves the monitor unnamed.
func (mgr *Manager) AddMonitor(rect geom.Rect, t *tags.Tag, name string) (*Monitor, error) {
	m, err := mgr.insertMonitor(rect, t, name)
	if err != nil {
		return nil, err
	}
	mgr.layout.Show(t)
	mgr.applyLayout(m)
	mgr.notifier.TagChanged(t, len(mgr.monitors)-1)
	return m, nil
}

func (mgr *Manager) insertMonitor(rect geom.Rect, t *tags.Tag, name string) (*Monitor, error) {
	if t == nil {
		return nil, ErrInvalidTag
	}
	if mgr.IsVisible(t) {
		return nil, fmt.Errorf("%w: %q", ErrTagInUse, t.Name)
	}
	if err := mgr.checkName(name, nil); err != nil {
		return nil, err
	}
	win, err := mgr.display.CreateStackingWindow()
	if err != nil {
		return nil, fmt.Errorf("failed to create stacking window: %w", err)
	}

	m := &Monitor{
		name:   name,
		rect:   rect,
		tag:    t,
		dirty:  true,
		window: win,
	}
	m.slice = stack.NewGroupSlice(m)
	mgr.stack.Insert(m.slice)
	mgr.monitors = append(mgr.monitors, m)

	mgr.logger.Debug("monitor added", "index", len(mgr.monitors)-1, "rect", rect.String(), "tag", t.Name, "name", name)
	return m, nil
}

func (mgr *Manager) checkName(name string, self *Monitor) error {
	if name == "" {
		return nil
	}
	if name[0] >= '0' && name[0] <= '9' {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if other := mgr.ByName(name); other != nil && other != self {
		return fmt.Errorf("%w: %q", ErrNameCollision, name)
	}
	return nil
}

// RemoveMonitor deletes the monitor at index and hides its tag.
func (mgr *Manager) RemoveMonitor(index int) error {
	if index < 0 || index >= len(mgr.monitors) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	if len(mgr.monitors) <= 1 {
		return ErrLastMonitor
	}

	m := mgr.monitors[index]
	if mgr.selected > index {
		mgr.selected--
	}
	mgr.layout.Hide(m.tag)
	mgr.stack.Remove(m.slice)
	mgr.display.DestroyWindow(m.window)
	mgr.monitors = append(mgr.monitors[:index], mgr.monitors[index+1:]...)

	mgr.logger.Debug("monitor removed", "index", index, "tag", m.tag.Name)

	if mgr.selected >= len(mgr.monitors) {
		mgr.selected = len(mgr.monitors) - 1
		mgr.applyLayout(mgr.Current())
	}
	return nil
}

// RenameMonitor changes the name of m. The empty name clears it.
func (mgr *Manager) RenameMonitor(m *Monitor, name string) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	if err := mgr.checkName(name, m); err != nil {
		return err
	}
	m.name = name
	return nil
}

// MoveMonitor sets the rectangle and padding of m and lays it out again.
func (mgr *Manager) MoveMonitor(m *Monitor, rect geom.Rect, pad platform.Padding) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	if rect.Width < MinSize || rect.Height < MinSize {
		return fmt.Errorf("%w: %s (minimum %dx%d)", ErrTooSmall, rect, MinSize, MinSize)
	}
	m.rect = rect
	m.pad = pad
	mgr.applyLayout(m)
	return nil
}

// SetPadding changes the padding of m and lays it out again.
func (mgr *Manager) SetPadding(m *Monitor, pad platform.Padding) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	m.pad = pad
	mgr.applyLayout(m)
	return nil
}

// LockTag prevents m from changing its tag.
func (mgr *Manager) LockTag(m *Monitor) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	m.tagLocked = true
	return nil
}

// UnlockTag allows m to change its tag again.
func (mgr *Manager) UnlockTag(m *Monitor) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	m.tagLocked = false
	return nil
}

// Raise puts m on top of the monitor stacking order.
func (mgr *Manager) Raise(m *Monitor) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	mgr.stack.Raise(m.slice)
	mgr.display.Restack(mgr.stack.Windows(false))
	return nil
}

// ShiftToMonitor moves the focused client of the selected monitor onto the
// tag shown by m.
func (mgr *Manager) ShiftToMonitor(m *Monitor) error {
	if m == nil {
		return ErrInvalidMonitor
	}
	cur := mgr.Current()
	if cur == nil || cur == m {
		return nil
	}
	if mgr.layout.MoveFocusedClient(cur.tag, m.tag) {
		mgr.applyLayout(cur)
		mgr.applyLayout(m)
	}
	return nil
}

// Close destroys the stacking resources of every monitor.
func (mgr *Manager) Close() {
	for _, m := range mgr.monitors {
		mgr.stack.Remove(m.slice)
		mgr.display.DestroyWindow(m.window)
	}
	mgr.monitors = nil
	mgr.selected = 0
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
