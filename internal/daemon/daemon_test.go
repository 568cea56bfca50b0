package daemon

import (
	"errors"
	"testing"

	"github.com/1broseidon/montile/internal/config"
	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/platform"
	"github.com/google/go-cmp/cmp"
)

type fakeBackend struct {
	heads       []geom.Rect
	headsErr    error
	displays    []platform.Display
	displaysErr error
	screen      geom.Rect
	struts      platform.Padding
	strutsErr   error
	manageErr   error

	nextWindow   platform.WindowID
	managing     bool
	docks        map[platform.WindowID]bool
	mapped       []platform.WindowID
	clientList   []platform.WindowID
	desktopNames []string
	onMap        func(platform.WindowID)
	onDestroy    func(platform.WindowID)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		headsErr:    errors.New("xinerama inactive"),
		displaysErr: errors.New("randr unavailable"),
		screen:      geom.Rect{Width: 1024, Height: 768},
		nextWindow:  100,
		docks:       map[platform.WindowID]bool{},
	}
}

func (b *fakeBackend) Displays() ([]platform.Display, error) { return b.displays, b.displaysErr }
func (b *fakeBackend) Heads() ([]geom.Rect, error)           { return b.heads, b.headsErr }
func (b *fakeBackend) ScreenRect() geom.Rect                 { return b.screen }
func (b *fakeBackend) DockPadding(geom.Rect) (platform.Padding, error) {
	return b.struts, b.strutsErr
}
func (b *fakeBackend) Pointer() (int, int, bool)                     { return 0, 0, false }
func (b *fakeBackend) WarpPointer(int, int)                          {}
func (b *fakeBackend) DestroyWindow(platform.WindowID)               {}
func (b *fakeBackend) Restack([]platform.WindowID)                   {}
func (b *fakeBackend) Raise(platform.WindowID)                       {}
func (b *fakeBackend) DiscardEnterEvents()                           {}
func (b *fakeBackend) MoveResize(platform.WindowID, geom.Rect) error { return nil }
func (b *fakeBackend) Unmap(platform.WindowID) error                 { return nil }
func (b *fakeBackend) Focus(platform.WindowID) error                 { return nil }
func (b *fakeBackend) WindowTitle(platform.WindowID) string          { return "xterm" }
func (b *fakeBackend) SetCurrentDesktop(int) error                   { return nil }
func (b *fakeBackend) IsFullscreen(platform.WindowID) bool           { return false }
func (b *fakeBackend) IsManageable(id platform.WindowID) bool        { return !b.docks[id] }

func (b *fakeBackend) CreateStackingWindow() (platform.WindowID, error) {
	b.nextWindow++
	return b.nextWindow, nil
}

func (b *fakeBackend) Map(id platform.WindowID) error {
	b.mapped = append(b.mapped, id)
	return nil
}

func (b *fakeBackend) SetDesktopNames(names []string) error {
	b.desktopNames = append([]string(nil), names...)
	return nil
}

func (b *fakeBackend) ManageRoot() error {
	if b.manageErr != nil {
		return b.manageErr
	}
	b.managing = true
	return nil
}

func (b *fakeBackend) WatchClients(onMap, onDestroy func(platform.WindowID)) {
	b.onMap = onMap
	b.onDestroy = onDestroy
}

func (b *fakeBackend) SetClientList(ids []platform.WindowID) error {
	b.clientList = ids
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Tags = []string{"1", "2", "3", "4"}
	return cfg
}

func startDaemon(t *testing.T, cfg *config.Config, backend *fakeBackend) *Daemon {
	t.Helper()
	d, err := New(Options{Config: cfg, Backend: backend})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func exec(t *testing.T, d *Daemon, args ...string) string {
	t.Helper()
	status, out := d.Exec(args)
	if status != 0 {
		t.Fatalf("%v: status %d, output %q", args, status, out)
	}
	return out
}

func TestNewRequiresConfigAndBackend(t *testing.T) {
	if _, err := New(Options{Backend: newFakeBackend()}); err == nil {
		t.Fatal("expected error without config")
	}
	if _, err := New(Options{Config: testConfig()}); err == nil {
		t.Fatal("expected error without backend")
	}
}

func TestStartDetectsMonitors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(b *fakeBackend)
		want    string
	}{
		{
			name: "xinerama heads",
			prepare: func(b *fakeBackend) {
				b.headsErr = nil
				b.heads = []geom.Rect{{Width: 800, Height: 600}, {X: 800, Width: 800, Height: 600}}
			},
			want: "0: 800x600+0+0 with tag \"1\" [FOCUS]\n1: 800x600+800+0 with tag \"2\"\n",
		},
		{
			name: "randr fallback",
			prepare: func(b *fakeBackend) {
				b.displaysErr = nil
				b.displays = []platform.Display{
					{ID: 0, Name: "DP-1", Bounds: geom.Rect{Width: 1920, Height: 1080}},
					{ID: 1, Name: "HDMI-1", Bounds: geom.Rect{X: 1920, Width: 1280, Height: 1024}},
				}
			},
			want: "0: 1920x1080+0+0 with tag \"1\" [FOCUS]\n1: 1280x1024+1920+0 with tag \"2\"\n",
		},
		{
			name:    "root window fallback",
			prepare: func(*fakeBackend) {},
			want:    "0: 1024x768+0+0 with tag \"1\" [FOCUS]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			tt.prepare(backend)
			d := startDaemon(t, testConfig(), backend)
			if got := exec(t, d, "list_monitors"); got != tt.want {
				t.Fatalf("list_monitors = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStartWithoutDetectionCoversScreen(t *testing.T) {
	backend := newFakeBackend()
	backend.headsErr = nil
	backend.heads = []geom.Rect{{Width: 800, Height: 600}, {X: 800, Width: 800, Height: 600}}
	cfg := testConfig()
	cfg.DetectMonitorsOnStart = false

	d := startDaemon(t, cfg, backend)
	want := "0: 1024x768+0+0 with tag \"1\" [FOCUS]\n"
	if got := exec(t, d, "list_monitors"); got != want {
		t.Fatalf("list_monitors = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"1", "2", "3", "4"}, backend.desktopNames); diff != "" {
		t.Fatalf("desktop names mismatch (-want +got):\n%s", diff)
	}
}

func TestStartConfiguredMonitors(t *testing.T) {
	cfg := testConfig()
	cfg.Monitors = []config.MonitorConfig{
		{Rect: "1000x700+0+0", Name: "main", Tag: "3", Pad: []int{20}},
		{Rect: "500x700+1000+0"},
	}
	d := startDaemon(t, cfg, newFakeBackend())

	want := "0: 1000x700+0+0 with tag \"3\", named \"main\" [FOCUS]\n" +
		"1: 500x700+1000+0 with tag \"2\"\n"
	if got := exec(t, d, "list_monitors"); got != want {
		t.Fatalf("list_monitors = %q, want %q", got, want)
	}
	if got := exec(t, d, "list_padding", "main"); got != "20 0 0 0\n" {
		t.Fatalf("list_padding = %q", got)
	}
}

func TestPadFromStruts(t *testing.T) {
	backend := newFakeBackend()
	backend.struts = platform.Padding{Up: 24}
	cfg := testConfig()
	cfg.PadFromStruts = true

	d := startDaemon(t, cfg, backend)
	if got := exec(t, d, "list_padding"); got != "24 0 0 0\n" {
		t.Fatalf("list_padding = %q", got)
	}

	backend.struts = platform.Padding{Down: 30}
	exec(t, d, "pad_from_struts", "0")
	if got := exec(t, d, "list_padding"); got != "0 0 30 0\n" {
		t.Fatalf("list_padding after command = %q", got)
	}

	status, out := d.Exec([]string{"pad_from_struts", "nope"})
	if status != 3 || out != "pad_from_struts: Monitor \"nope\" not found!\n" {
		t.Fatalf("unknown monitor: status %d, output %q", status, out)
	}

	backend.strutsErr = errors.New("no docks")
	if status, _ := d.Exec([]string{"pad_from_struts"}); status != 1 {
		t.Fatalf("struts failure status = %d, want 1", status)
	}
}

func TestManageWindows(t *testing.T) {
	backend := newFakeBackend()
	cfg := testConfig()
	cfg.ManageWindows = true
	d := startDaemon(t, cfg, backend)

	if !backend.managing || backend.onMap == nil {
		t.Fatal("root window not managed")
	}

	backend.onMap(500)
	backend.docks[600] = true
	backend.onMap(600)

	if diff := cmp.Diff([]platform.WindowID{500}, d.Clients()); diff != "" {
		t.Fatalf("clients mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]platform.WindowID{500}, backend.clientList); diff != "" {
		t.Fatalf("client list mismatch (-want +got):\n%s", diff)
	}
	if d.tags.Find("1").Client(500) == nil {
		t.Fatal("client not added to the focused tag")
	}
	mapped := map[platform.WindowID]bool{}
	for _, id := range backend.mapped {
		mapped[id] = true
	}
	if !mapped[500] || !mapped[600] {
		t.Fatalf("mapped = %v, want 500 and 600", backend.mapped)
	}

	backend.onDestroy(999)
	backend.onDestroy(500)
	if len(d.Clients()) != 0 || len(backend.clientList) != 0 {
		t.Fatalf("client not removed: %v / %v", d.Clients(), backend.clientList)
	}
	if d.tags.Find("1").Client(500) != nil {
		t.Fatal("client still on its tag")
	}
}

func TestManageFollowsShiftedClient(t *testing.T) {
	backend := newFakeBackend()
	backend.headsErr = nil
	backend.heads = []geom.Rect{{Width: 800, Height: 600}, {X: 800, Width: 800, Height: 600}}
	cfg := testConfig()
	cfg.ManageWindows = true
	d := startDaemon(t, cfg, backend)

	backend.onMap(500)
	exec(t, d, "shift_to_monitor", "1")
	if d.tags.Find("2").Client(500) == nil {
		t.Fatal("client not shifted to tag 2")
	}
	backend.onDestroy(500)
	if d.tags.Find("2").Client(500) != nil {
		t.Fatal("shifted client not removed")
	}
}

func TestStartFailsWhenRootIsTaken(t *testing.T) {
	backend := newFakeBackend()
	backend.manageErr = errors.New("another window manager is running")
	cfg := testConfig()
	cfg.ManageWindows = true

	d, err := New(Options{Config: cfg, Backend: backend})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Start(); err == nil {
		t.Fatal("expected Start to fail")
	}
}

func TestExecAddPublishesDesktopNames(t *testing.T) {
	backend := newFakeBackend()
	d := startDaemon(t, testConfig(), backend)

	exec(t, d, "add", "web")
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "web"}, backend.desktopNames); diff != "" {
		t.Fatalf("desktop names mismatch (-want +got):\n%s", diff)
	}

	status, out := d.Exec([]string{"nope"})
	if status != 2 || out != "error: Command \"nope\" not found\n" {
		t.Fatalf("unknown command: status %d, output %q", status, out)
	}
}

func TestReloadCommand(t *testing.T) {
	backend := newFakeBackend()
	next := testConfig()
	next.FrameGap = 5
	next.Tags = append(next.Tags, "10")
	next.Keybinds = map[string]string{"Mod4-q": "quit"}

	d, err := New(Options{
		Config:  testConfig(),
		Backend: backend,
		Reload:  func() (*config.Config, error) { return next, nil },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Close()

	var binds map[string]string
	d.OnKeybinds(func(b map[string]string) { binds = b })

	exec(t, d, "reload")
	if got := exec(t, d, "get", "frame_gap"); got != "5\n" {
		t.Fatalf("frame_gap = %q", got)
	}
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "10"}, backend.desktopNames); diff != "" {
		t.Fatalf("desktop names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(next.Keybinds, binds); diff != "" {
		t.Fatalf("keybinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(next.Keybinds, d.Keybinds()); diff != "" {
		t.Fatalf("current keybinds mismatch (-want +got):\n%s", diff)
	}
}

func TestReloadFailures(t *testing.T) {
	d := startDaemon(t, testConfig(), newFakeBackend())
	status, out := d.Exec([]string{"reload"})
	if status != 1 || out != "reload: reload is not configured\n" {
		t.Fatalf("reload without loader: status %d, output %q", status, out)
	}
	if err := d.Reload(); err == nil {
		t.Fatal("expected Reload to fail without loader")
	}

	d.reload = func() (*config.Config, error) { return nil, errors.New("bad yaml") }
	status, out = d.Exec([]string{"reload"})
	if status != 1 || out != "reload: bad yaml\n" {
		t.Fatalf("reload error: status %d, output %q", status, out)
	}
}

func TestQuitCommand(t *testing.T) {
	d := startDaemon(t, testConfig(), newFakeBackend())

	if status, _ := d.Exec([]string{"quit", "now"}); status != 7 {
		t.Fatalf("quit with argument status = %d, want 7", status)
	}
	select {
	case <-d.Done():
		t.Fatal("daemon quit on a rejected command")
	default:
	}

	exec(t, d, "quit")
	exec(t, d, "quit")
	select {
	case <-d.Done():
	default:
		t.Fatal("Done not closed after quit")
	}
}
