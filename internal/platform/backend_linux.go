//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a connection to display, or to $DISPLAY
// when display is empty.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// QuitEventLoop makes a running EventLoop return.
func (b *LinuxBackend) QuitEventLoop() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Connection exposes the X11 connection for event handling.
func (b *LinuxBackend) Connection() *x11.Connection {
	return b.conn
}

// Displays returns the active RandR outputs in CRTC order.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	outputs, err := conn.Outputs()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(outputs))
	for _, o := range outputs {
		displays = append(displays, Display{ID: o.CRTC, Name: o.Name, Bounds: o.Rect})
	}
	return displays, nil
}

// Heads returns the distinct Xinerama screens.
func (b *LinuxBackend) Heads() ([]geom.Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	return conn.PhysicalHeads()
}

// ScreenRect returns the root window geometry, or an empty rect when it
// cannot be queried.
func (b *LinuxBackend) ScreenRect() geom.Rect {
	conn, err := b.connection()
	if err != nil {
		return geom.Rect{}
	}
	r, err := conn.ScreenRect()
	if err != nil {
		return geom.Rect{}
	}
	return r
}

// DockPadding converts the dock struts overlapping area into padding.
func (b *LinuxBackend) DockPadding(area geom.Rect) (Padding, error) {
	conn, err := b.connection()
	if err != nil {
		return Padding{}, err
	}
	struts, err := conn.GetDockStruts(area)
	if err != nil {
		return Padding{}, err
	}
	return Padding{Up: struts.Top, Right: struts.Right, Down: struts.Bottom, Left: struts.Left}, nil
}

// Pointer returns the pointer position; ok is false when it cannot be queried.
func (b *LinuxBackend) Pointer() (int, int, bool) {
	conn, err := b.connection()
	if err != nil {
		return 0, 0, false
	}
	x, y, err := conn.QueryPointer()
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}

// WarpPointer moves the pointer to absolute root coordinates.
func (b *LinuxBackend) WarpPointer(x, y int) {
	if conn, err := b.connection(); err == nil {
		_ = conn.WarpPointer(x, y)
	}
}

// CreateStackingWindow creates a placeholder window for a monitor's stacking slot.
func (b *LinuxBackend) CreateStackingWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	win, err := conn.CreateStackingWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(win), nil
}

// DestroyWindow destroys a window.
func (b *LinuxBackend) DestroyWindow(id WindowID) {
	if conn, err := b.connection(); err == nil {
		conn.DestroyWindow(xproto.Window(id))
	}
}

// Restack orders windows top to bottom.
func (b *LinuxBackend) Restack(windows []WindowID) {
	conn, err := b.connection()
	if err != nil {
		return
	}
	ids := make([]xproto.Window, len(windows))
	for i, w := range windows {
		ids[i] = xproto.Window(w)
	}
	conn.Restack(ids)
}

// Raise puts a window above all its siblings.
func (b *LinuxBackend) Raise(id WindowID) {
	if conn, err := b.connection(); err == nil {
		conn.RaiseWindow(xproto.Window(id))
	}
}

// DiscardEnterEvents drops queued EnterNotify events.
func (b *LinuxBackend) DiscardEnterEvents() {
	if conn, err := b.connection(); err == nil {
		conn.DiscardEnterEvents()
	}
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(id WindowID, bounds geom.Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(id), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

// Map makes a window visible.
func (b *LinuxBackend) Map(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MapWindow(xproto.Window(id))
}

// Unmap hides a window.
func (b *LinuxBackend) Unmap(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.UnmapWindow(xproto.Window(id))
}

// Focus gives a window the input focus.
func (b *LinuxBackend) Focus(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(id))
}

// WindowTitle returns a window's title for diagnostics.
func (b *LinuxBackend) WindowTitle(id WindowID) string {
	conn, err := b.connection()
	if err != nil {
		return ""
	}
	return conn.WindowTitle(xproto.Window(id))
}

// SetCurrentDesktop publishes the index of the focused tag.
func (b *LinuxBackend) SetCurrentDesktop(index int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetCurrentDesktop(index)
}

// SetDesktopNames publishes the tag names as desktops.
func (b *LinuxBackend) SetDesktopNames(names []string) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetDesktopNames(names)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

// ManageRoot takes over substructure redirection on the root window.
func (b *LinuxBackend) ManageRoot() error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.ManageRoot()
}

// WatchClients delivers map requests and destroyed windows of root children.
func (b *LinuxBackend) WatchClients(onMap, onDestroy func(WindowID)) {
	conn, err := b.connection()
	if err != nil {
		return
	}
	conn.WatchClients(x11.ClientEvents{
		MapRequest: func(win xproto.Window) { onMap(WindowID(win)) },
		Destroy:    func(win xproto.Window) { onDestroy(WindowID(win)) },
	})
}

// IsManageable reports whether a window should be tiled as a client.
func (b *LinuxBackend) IsManageable(id WindowID) bool {
	conn, err := b.connection()
	if err != nil {
		return false
	}
	return conn.IsNormalWindow(xproto.Window(id))
}

// IsFullscreen reports whether a window asked to be fullscreen.
func (b *LinuxBackend) IsFullscreen(id WindowID) bool {
	conn, err := b.connection()
	if err != nil {
		return false
	}
	return conn.IsFullscreen(xproto.Window(id))
}

// SetClientList publishes the managed windows.
func (b *LinuxBackend) SetClientList(ids []WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	windows := make([]xproto.Window, len(ids))
	for i, id := range ids {
		windows[i] = xproto.Window(id)
	}
	return conn.SetClientList(windows)
}
