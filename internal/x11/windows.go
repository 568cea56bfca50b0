package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// stackingWindowSize is the geometry of the unmapped placeholder window that
// marks a monitor's position in the global stacking order.
const stackingWindowSize = 42

// CreateStackingWindow creates an unmapped, override-redirect child of the
// root window used purely as a stacking anchor.
func (c *Connection) CreateStackingWindow() (xproto.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}
	err = win.CreateChecked(c.Root, stackingWindowSize, stackingWindowSize,
		stackingWindowSize, stackingWindowSize, xproto.CwOverrideRedirect, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to create stacking window: %w", err)
	}
	return win.Id, nil
}

// DestroyWindow destroys a window created by this connection.
func (c *Connection) DestroyWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Destroy()
}

// Restack orders the given windows top to bottom. The first window keeps
// its position and each following window is placed directly below its
// predecessor.
func (c *Connection) Restack(windows []xproto.Window) {
	for i := 1; i < len(windows); i++ {
		xwindow.New(c.XUtil, windows[i]).StackSibling(windows[i-1], xproto.StackModeBelow)
	}
}

// RaiseWindow puts a window on top of all its siblings.
func (c *Connection) RaiseWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Stack(xproto.StackModeAbove)
}

// DiscardEnterEvents drops every EnterNotify event that is already queued so
// that windows moved under the pointer do not steal focus.
func (c *Connection) DiscardEnterEvents() {
	c.XUtil.Sync()
	xevent.Read(c.XUtil, false)

	queue := xevent.Peek(c.XUtil)
	for i := len(queue) - 1; i >= 0; i-- {
		if _, ok := queue[i].Event.(xproto.EnterNotifyEvent); ok {
			xevent.DequeueAt(c.XUtil, i)
		}
	}
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	return nil
}

// MapWindow makes a window visible.
func (c *Connection) MapWindow(windowID xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// UnmapWindow hides a window.
func (c *Connection) UnmapWindow(windowID xproto.Window) error {
	return xproto.UnmapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// FocusWindow gives a window the input focus and publishes it as
// _NET_ACTIVE_WINDOW.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	err := xproto.SetInputFocusChecked(c.XUtil.Conn(), xproto.InputFocusPointerRoot,
		windowID, xproto.TimeCurrentTime).Check()
	if err != nil {
		return fmt.Errorf("failed to focus window %d: %w", windowID, err)
	}
	return ewmh.ActiveWindowSet(c.XUtil, windowID)
}

// ManageRoot selects substructure redirection on the root window. It fails
// when another window manager is already running.
func (c *Connection) ManageRoot() error {
	err := xwindow.New(c.XUtil, c.Root).Listen(
		xproto.EventMaskSubstructureRedirect,
		xproto.EventMaskSubstructureNotify,
		xproto.EventMaskEnterWindow,
	)
	if err != nil {
		return fmt.Errorf("another window manager is running: %w", err)
	}
	return nil
}

// SetClientList publishes the managed windows as _NET_CLIENT_LIST.
func (c *Connection) SetClientList(windows []xproto.Window) error {
	return ewmh.ClientListSet(c.XUtil, windows)
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	return len(types) == 0
}

// IsFullscreen reports whether the window carries _NET_WM_STATE_FULLSCREEN.
func (c *Connection) IsFullscreen(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}

// WindowTitle returns the EWMH name, falling back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}
