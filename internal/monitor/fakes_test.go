package monitor

import (
	"fmt"

	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/platform"
	"github.com/1broseidon/montile/internal/tags"
)

type fakeLayout struct {
	calls      []string
	areas      map[*tags.Tag]geom.Rect
	split      map[*tags.Tag]bool
	focused    map[*tags.Tag]platform.WindowID
	fullscreen map[platform.WindowID]bool
}

func newFakeLayout() *fakeLayout {
	return &fakeLayout{
		areas:      map[*tags.Tag]geom.Rect{},
		split:      map[*tags.Tag]bool{},
		focused:    map[*tags.Tag]platform.WindowID{},
		fullscreen: map[platform.WindowID]bool{},
	}
}

func (f *fakeLayout) record(op string, t *tags.Tag) {
	f.calls = append(f.calls, op+":"+t.Name)
}

func (f *fakeLayout) ApplyLayout(t *tags.Tag, area geom.Rect) {
	f.record("apply", t)
	f.areas[t] = area
}
func (f *fakeLayout) UpdateFrameVisibility(t *tags.Tag) { f.record("visibility", t) }
func (f *fakeLayout) Show(t *tags.Tag)                  { f.record("show", t) }
func (f *fakeLayout) Hide(t *tags.Tag)                  { f.record("hide", t) }
func (f *fakeLayout) Focus(t *tags.Tag)                 { f.record("focus", t) }
func (f *fakeLayout) IsSplit(t *tags.Tag) bool          { return f.split[t] }

func (f *fakeLayout) FocusedWindow(t *tags.Tag) (platform.WindowID, bool) {
	id, ok := f.focused[t]
	return id, ok
}

func (f *fakeLayout) IsFullscreen(_ *tags.Tag, id platform.WindowID) bool {
	return f.fullscreen[id]
}

func (f *fakeLayout) MoveFocusedClient(from, to *tags.Tag) bool {
	id, ok := f.focused[from]
	if !ok {
		return false
	}
	delete(f.focused, from)
	f.focused[to] = id
	f.calls = append(f.calls, fmt.Sprintf("move:%s->%s", from.Name, to.Name))
	return true
}

func (f *fakeLayout) count(op string) int {
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeLayout) index(op string) int {
	for i, c := range f.calls {
		if c == op {
			return i
		}
	}
	return -1
}

func (f *fakeLayout) reset() {
	f.calls = nil
}

type fakeDisplay struct {
	nextWindow  platform.WindowID
	destroyed   []platform.WindowID
	pointerX    int
	pointerY    int
	pointerOK   bool
	warps       [][2]int
	restacks    [][]platform.WindowID
	raised      []platform.WindowID
	discards    int
	createError error
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{nextWindow: 1000, pointerOK: true}
}

func (d *fakeDisplay) CreateStackingWindow() (platform.WindowID, error) {
	if d.createError != nil {
		return 0, d.createError
	}
	d.nextWindow++
	return d.nextWindow, nil
}
func (d *fakeDisplay) DestroyWindow(id platform.WindowID) { d.destroyed = append(d.destroyed, id) }
func (d *fakeDisplay) Pointer() (int, int, bool)          { return d.pointerX, d.pointerY, d.pointerOK }
func (d *fakeDisplay) WarpPointer(x, y int) {
	d.warps = append(d.warps, [2]int{x, y})
	d.pointerX, d.pointerY = x, y
}
func (d *fakeDisplay) Restack(windows []platform.WindowID) {
	d.restacks = append(d.restacks, append([]platform.WindowID(nil), windows...))
}
func (d *fakeDisplay) Raise(id platform.WindowID) { d.raised = append(d.raised, id) }
func (d *fakeDisplay) DiscardEnterEvents()        { d.discards++ }

type tagEvent struct {
	Tag     string
	Monitor int
}

type fakeNotifier struct {
	changed  []tagEvent
	desktops []string
}

func (n *fakeNotifier) TagChanged(t *tags.Tag, monitor int) {
	n.changed = append(n.changed, tagEvent{Tag: t.Name, Monitor: monitor})
}

func (n *fakeNotifier) UpdateCurrentDesktop(t *tags.Tag) {
	n.desktops = append(n.desktops, t.Name)
}

func (n *fakeNotifier) reset() {
	n.changed = nil
	n.desktops = nil
}

type harness struct {
	mgr      *Manager
	layout   *fakeLayout
	display  *fakeDisplay
	notifier *fakeNotifier
	tags     *tags.Registry
}

func newHarness(tagNames ...string) *harness {
	if len(tagNames) == 0 {
		tagNames = []string{"1", "2", "3", "4"}
	}
	h := &harness{
		layout:   newFakeLayout(),
		display:  newFakeDisplay(),
		notifier: &fakeNotifier{},
		tags:     tags.NewRegistry(tagNames...),
	}
	h.mgr = NewManager(Config{
		Layout:   h.layout,
		Tags:     h.tags,
		Display:  h.display,
		Notifier: h.notifier,
		Settings: Settings{SwapMonitorsToGetTag: true},
	})
	return h
}

func (h *harness) tag(name string) *tags.Tag {
	return h.tags.Find(name)
}

// addMonitors creates side-by-side 800x600 monitors showing the first tags.
func (h *harness) addMonitors(n int) {
	for i := 0; i < n; i++ {
		rect := geom.Rect{X: i * 800, Y: 0, Width: 800, Height: 600}
		if _, err := h.mgr.AddMonitor(rect, h.tags.All()[i], ""); err != nil {
			panic(err)
		}
	}
	h.layout.reset()
	h.notifier.reset()
	h.display.warps = nil
	h.display.restacks = nil
}

func clientFor(id platform.WindowID) *tags.Client {
	return &tags.Client{ID: id}
}
