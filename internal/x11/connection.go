// Package x11 talks to the X server: screen detection, pointer, stacking,
// EWMH desktop properties and client windows.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection holds the X connection and the root window of its screen.
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	Display string
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		if display == "" {
			return nil, err
		}
		return nil, fmt.Errorf("display %s: %w", display, err)
	}

	// Required for keybind.KeyPressFun bindings on the root window.
	keybind.Initialize(xu)

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		Display: display,
	}, nil
}

// EventLoop dispatches X events until Quit is called.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running EventLoop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
