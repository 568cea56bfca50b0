package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/ewmh"
)

// SetCurrentDesktop publishes _NET_CURRENT_DESKTOP on the root window.
func (c *Connection) SetCurrentDesktop(index int) error {
	if index < 0 {
		return fmt.Errorf("invalid desktop index %d", index)
	}
	if err := ewmh.CurrentDesktopSet(c.XUtil, uint(index)); err != nil {
		return fmt.Errorf("failed to set current desktop: %w", err)
	}
	return nil
}

// SetDesktopNames publishes _NET_DESKTOP_NAMES and _NET_NUMBER_OF_DESKTOPS.
func (c *Connection) SetDesktopNames(names []string) error {
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(len(names))); err != nil {
		return fmt.Errorf("failed to set desktop count: %w", err)
	}
	if err := ewmh.DesktopNamesSet(c.XUtil, names); err != nil {
		return fmt.Errorf("failed to set desktop names: %w", err)
	}
	return nil
}
