package platform

import "github.com/1broseidon/montile/internal/geom"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Display describes a physical output reported by the display server.
type Display struct {
	ID     int
	Name   string
	Bounds geom.Rect
}

// Padding is the space reserved by docks and panels along each edge.
type Padding struct {
	Up    int
	Right int
	Down  int
	Left  int
}

// Backend abstracts the window-system operations the window manager needs.
type Backend interface {
	// Displays lists outputs via RandR.
	Displays() ([]Display, error)
	// Heads lists screens via Xinerama, merging identical geometries.
	Heads() ([]geom.Rect, error)
	// ScreenRect returns the geometry of the root window.
	ScreenRect() geom.Rect
	// DockPadding reports the dock struts overlapping the given area.
	DockPadding(area geom.Rect) (Padding, error)

	Pointer() (x, y int, ok bool)
	WarpPointer(x, y int)

	CreateStackingWindow() (WindowID, error)
	DestroyWindow(id WindowID)
	Restack(windows []WindowID)
	Raise(id WindowID)
	DiscardEnterEvents()

	MoveResize(id WindowID, bounds geom.Rect) error
	Map(id WindowID) error
	Unmap(id WindowID) error
	Focus(id WindowID) error
	WindowTitle(id WindowID) string

	SetCurrentDesktop(index int) error
	SetDesktopNames(names []string) error
}
