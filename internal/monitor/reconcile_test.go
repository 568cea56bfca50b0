package monitor

import (
	"errors"
	"testing"

	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/tags"
	"github.com/google/go-cmp/cmp"
)

func rects(m *Manager) []geom.Rect {
	var out []geom.Rect
	for _, mon := range m.Monitors() {
		out = append(out, mon.Rect())
	}
	return out
}

func TestReconcileGrows(t *testing.T) {
	h := newHarness()
	h.addMonitors(1)
	want := []geom.Rect{
		{X: 0, Y: 0, Width: 800, Height: 600},
		{X: 800, Y: 0, Width: 800, Height: 600},
	}

	if err := h.mgr.ReconcileRects(want); err != nil {
		t.Fatalf("ReconcileRects() error = %v", err)
	}
	if diff := cmp.Diff(want, rects(h.mgr)); diff != "" {
		t.Fatalf("rects (-want +got):\n%s", diff)
	}
	if got := h.mgr.ByIndex(1).Tag(); got != h.tag("2") {
		t.Fatalf("new monitor shows %q, want the first unused tag", got.Name)
	}
	for _, m := range h.mgr.Monitors() {
		if m.Dirty() {
			t.Fatalf("monitor left dirty")
		}
	}
	if h.layout.count("show:2") != 1 {
		t.Fatalf("new tag not shown: %v", h.layout.calls)
	}
}

func TestReconcileShrinks(t *testing.T) {
	h := newHarness()
	h.addMonitors(3)
	h.mgr.FocusIndex(2)
	want := []geom.Rect{{X: 0, Y: 0, Width: 1920, Height: 1080}}

	if err := h.mgr.ReconcileRects(want); err != nil {
		t.Fatalf("ReconcileRects() error = %v", err)
	}
	if diff := cmp.Diff(want, rects(h.mgr)); diff != "" {
		t.Fatalf("rects (-want +got):\n%s", diff)
	}
	if h.mgr.Selected() != 0 {
		t.Fatalf("selected = %d, want 0", h.mgr.Selected())
	}
	if h.layout.count("hide:2") != 1 || h.layout.count("hide:3") != 1 {
		t.Fatalf("removed monitors' tags not hidden: %v", h.layout.calls)
	}
}

func TestReconcileRunsOutOfTags(t *testing.T) {
	h := newHarness("a", "b")
	h.addMonitors(1)
	input := []geom.Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 100, Y: 0, Width: 100, Height: 100},
		{X: 200, Y: 0, Width: 100, Height: 100},
	}

	err := h.mgr.ReconcileRects(input)
	if !errors.Is(err, ErrNoFreeTag) {
		t.Fatalf("error = %v, want ErrNoFreeTag", err)
	}
	if diff := cmp.Diff(input[:2], rects(h.mgr)); diff != "" {
		t.Fatalf("monitors created before the failure should stay (-want +got):\n%s", diff)
	}
}

func TestReconcileRequiresRects(t *testing.T) {
	h := newHarness()
	h.addMonitors(1)
	if err := h.mgr.ReconcileRects(nil); !errors.Is(err, ErrNoRects) {
		t.Fatalf("error = %v, want ErrNoRects", err)
	}
}

func TestEnsureMonitorsAvailable(t *testing.T) {
	h := newHarness("only")
	screen := geom.Rect{X: 0, Y: 0, Width: 1280, Height: 1024}

	if err := h.mgr.EnsureMonitorsAvailable(screen); err != nil {
		t.Fatalf("EnsureMonitorsAvailable() error = %v", err)
	}
	if h.mgr.Count() != 1 || h.mgr.Current().Rect() != screen {
		t.Fatalf("expected one monitor covering the screen")
	}
	if err := h.mgr.EnsureMonitorsAvailable(screen); err != nil || h.mgr.Count() != 1 {
		t.Fatalf("second call must be a no-op")
	}
}

func TestEnsureMonitorsAvailableCreatesTag(t *testing.T) {
	registry := tags.NewRegistry()
	layout := newFakeLayout()
	mgr := NewManager(Config{Layout: layout, Tags: registry, Display: newFakeDisplay()})

	if err := mgr.EnsureMonitorsAvailable(geom.Rect{Width: 100, Height: 100}); err != nil {
		t.Fatalf("EnsureMonitorsAvailable() error = %v", err)
	}
	if got := mgr.Current().Tag(); got == nil || got != registry.Find("default") {
		t.Fatalf("expected a freshly created default tag")
	}
	if layout.count("show:default") != 1 {
		t.Fatalf("new tag not shown: %v", layout.calls)
	}
}

func TestDetectRects(t *testing.T) {
	failing := Detector{Name: "xinerama", Detect: func() ([]geom.Rect, error) {
		return nil, errors.New("extension missing")
	}}
	empty := Detector{Name: "randr", Detect: func() ([]geom.Rect, error) {
		return []geom.Rect{{}}, nil
	}}
	screen := Detector{Name: "screen", Detect: func() ([]geom.Rect, error) {
		r := geom.Rect{Width: 1920, Height: 1080}
		return []geom.Rect{r, r}, nil
	}}

	got, name, err := DetectRects([]Detector{failing, empty, screen}, nil)
	if err != nil {
		t.Fatalf("DetectRects() error = %v", err)
	}
	if name != "screen" {
		t.Fatalf("detector = %q, want screen", name)
	}
	if diff := cmp.Diff([]geom.Rect{{Width: 1920, Height: 1080}}, got); diff != "" {
		t.Fatalf("rects (-want +got):\n%s", diff)
	}

	if _, _, err := DetectRects([]Detector{failing, empty}, nil); !errors.Is(err, ErrNoDetection) {
		t.Fatalf("error = %v, want ErrNoDetection", err)
	}
}

func TestLockDefersLayout(t *testing.T) {
	h := newHarness()
	h.addMonitors(2)
	m := h.mgr.ByIndex(1)

	h.mgr.Lock()
	h.mgr.Lock()
	_ = h.mgr.ApplyLayout(m)
	_ = h.mgr.ApplyLayout(m)
	_ = h.mgr.SetPadding(m, h.mgr.ByIndex(0).Padding())
	if !m.Dirty() || h.layout.count("apply:2") != 0 {
		t.Fatalf("locked layout ran: %v", h.layout.calls)
	}

	h.mgr.Unlock()
	if h.mgr.LockLevel() != 1 || h.layout.count("apply:2") != 0 {
		t.Fatalf("inner unlock must not lay out")
	}

	h.mgr.Unlock()
	if m.Dirty() {
		t.Fatalf("monitor still dirty after final unlock")
	}
	if h.layout.count("apply:2") != 1 || h.layout.count("apply:1") != 0 {
		t.Fatalf("want exactly one pass for the dirty monitor: %v", h.layout.calls)
	}
}

func TestUnlockSaturatesAtZero(t *testing.T) {
	h := newHarness()
	h.addMonitors(1)
	h.mgr.Unlock()
	h.mgr.Unlock()
	if h.mgr.LockLevel() != 0 {
		t.Fatalf("lock level = %d, want 0", h.mgr.LockLevel())
	}
	h.mgr.Lock()
	if h.mgr.LockLevel() != 1 {
		t.Fatalf("lock level = %d, want 1", h.mgr.LockLevel())
	}
}

func TestTagsInUse(t *testing.T) {
	h := newHarness()
	h.addMonitors(2)
	got := h.mgr.TagsInUse()
	if len(got) != 2 || got[0] != h.tag("1") || got[1] != h.tag("2") {
		t.Fatalf("TagsInUse() = %v", got)
	}
}
