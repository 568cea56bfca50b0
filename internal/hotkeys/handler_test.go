package hotkeys

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeBinder struct {
	callbacks map[string]func()
	fail      map[string]bool
	unbinds   int
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{callbacks: map[string]func(){}, fail: map[string]bool{}}
}

func (b *fakeBinder) Bind(seq string, cb func()) error {
	if b.fail[seq] {
		return errors.New("bad key")
	}
	b.callbacks[seq] = cb
	return nil
}

func (b *fakeBinder) UnbindAll() {
	b.unbinds++
	b.callbacks = map[string]func(){}
}

type recordingExec struct {
	calls  [][]string
	status int
}

func (e *recordingExec) Exec(args []string) (int, string) {
	e.calls = append(e.calls, args)
	return e.status, ""
}

func TestRegisterSplitsCommandLine(t *testing.T) {
	binder := newFakeBinder()
	exec := &recordingExec{}
	h := NewHandler(binder, exec, nil)

	if err := h.Register("Mod4-period", "  use_index  +1 --skip-visible "); err != nil {
		t.Fatalf("Register: %v", err)
	}
	binder.callbacks["Mod4-period"]()
	binder.callbacks["Mod4-period"]()

	want := [][]string{
		{"use_index", "+1", "--skip-visible"},
		{"use_index", "+1", "--skip-visible"},
	}
	if diff := cmp.Diff(want, exec.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterRejectsEmptyCommand(t *testing.T) {
	h := NewHandler(newFakeBinder(), &recordingExec{}, nil)
	if err := h.Register("Mod4-x", "   "); err == nil {
		t.Fatal("expected error for empty command")
	}
	if _, ok := h.Bound("Mod4-x"); ok {
		t.Fatal("empty command should not be bound")
	}
}

func TestFailedCommandDoesNotPanic(t *testing.T) {
	binder := newFakeBinder()
	exec := &recordingExec{status: 3}
	h := NewHandler(binder, exec, nil)
	if err := h.Register("Mod4-1", "use nope"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	binder.callbacks["Mod4-1"]()
	if len(exec.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(exec.calls))
	}
}

func TestApplyReplacesBindings(t *testing.T) {
	binder := newFakeBinder()
	h := NewHandler(binder, &recordingExec{}, nil)
	if err := h.Register("Mod4-old", "monitor_cycle"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	binder.fail["Mod4-bad"] = true
	errs := h.Apply(map[string]string{
		"Mod4-Tab": "monitor_cycle +1",
		"Mod4-bad": "use 1",
	})
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one", errs)
	}
	if binder.unbinds != 1 {
		t.Fatalf("unbinds = %d, want 1", binder.unbinds)
	}
	if _, ok := h.Bound("Mod4-old"); ok {
		t.Fatal("old binding survived Apply")
	}
	args, ok := h.Bound("Mod4-Tab")
	if !ok {
		t.Fatal("Mod4-Tab not bound")
	}
	if diff := cmp.Diff([]string{"monitor_cycle", "+1"}, args); diff != "" {
		t.Fatalf("binding mismatch (-want +got):\n%s", diff)
	}
}
