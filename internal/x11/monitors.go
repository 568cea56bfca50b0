package x11

import (
	"fmt"

	"github.com/1broseidon/montile/internal/geom"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	xxinerama "github.com/BurntSushi/xgbutil/xinerama"
)

// Output is an active RandR output and the CRTC area it scans out.
type Output struct {
	CRTC int
	Name string
	Rect geom.Rect
}

// Outputs lists the enabled CRTCs in CRTC order. An output cloning the
// geometry of an earlier one is skipped.
func (c *Connection) Outputs() ([]Output, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	res, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var outputs []Output
	seen := make([]geom.Rect, 0, len(res.Crtcs))
	for i, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, res.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		r := geom.Rect{X: int(info.X), Y: int(info.Y), Width: int(info.Width), Height: int(info.Height)}
		if containsRect(seen, r) {
			continue
		}
		seen = append(seen, r)

		name := fmt.Sprintf("crtc%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], res.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		outputs = append(outputs, Output{CRTC: i, Name: name, Rect: r})
	}
	return outputs, nil
}

// PhysicalHeads lists the Xinerama screens. Screens with identical geometry
// (cloned outputs) are reported once.
func (c *Connection) PhysicalHeads() ([]geom.Rect, error) {
	if err := xinerama.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("xinerama init failed: %w", err)
	}

	heads, err := xxinerama.PhysicalHeads(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to query xinerama screens: %w", err)
	}

	rects := make([]geom.Rect, 0, len(heads))
	for _, head := range heads {
		r := geom.Rect{X: head.X(), Y: head.Y(), Width: head.Width(), Height: head.Height()}
		if containsRect(rects, r) {
			continue
		}
		rects = append(rects, r)
	}
	return rects, nil
}

func containsRect(rects []geom.Rect, r geom.Rect) bool {
	for _, existing := range rects {
		if existing == r {
			return true
		}
	}
	return false
}

// ScreenRect returns the geometry of the root window.
func (c *Connection) ScreenRect() (geom.Rect, error) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return geom.Rect{
		X:      int(rootGeom.X),
		Y:      int(rootGeom.Y),
		Width:  int(rootGeom.Width),
		Height: int(rootGeom.Height),
	}, nil
}

// QueryPointer returns the pointer position in root coordinates.
func (c *Connection) QueryPointer() (int, int, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}

// WarpPointer moves the pointer to the given root coordinates.
func (c *Connection) WarpPointer(x, y int) error {
	return xproto.WarpPointerChecked(c.XUtil.Conn(), 0, c.Root, 0, 0, 0, 0, int16(x), int16(y)).Check()
}

// DockStruts is the space docks reserve along each edge of an area.
type DockStruts struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// GetDockStruts collects _NET_WM_STRUT_PARTIAL (or _NET_WM_STRUT) from every
// dock window and returns how far each edge of area is covered.
func (c *Connection) GetDockStruts(area geom.Rect) (DockStruts, error) {
	var struts DockStruts

	root, err := c.ScreenRect()
	if err != nil {
		return struts, err
	}

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return struts, fmt.Errorf("failed to get client list: %w", err)
	}

	for _, windowID := range clients {
		if !c.isDock(windowID) {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			accumulateStruts(area, root.Width, root.Height, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:       s.Left,
				Right:      s.Right,
				Top:        s.Top,
				Bottom:     s.Bottom,
				LeftEndY:   uint(root.Height - 1),
				RightEndY:  uint(root.Height - 1),
				TopEndX:    uint(root.Width - 1),
				BottomEndX: uint(root.Width - 1),
			}
			accumulateStruts(area, root.Width, root.Height, sp, &struts)
		}
	}

	return struts, nil
}

func (c *Connection) isDock(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

func accumulateStruts(area geom.Rect, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *DockStruts) {
	if sp.Top > 0 {
		band := spanRect(int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top))
		acc.Top = max(acc.Top, area.Intersection(band).Height)
	}
	if sp.Bottom > 0 {
		band := spanRect(int(sp.BottomStartX), rootHeight-int(sp.Bottom), int(sp.BottomEndX)+1, rootHeight)
		acc.Bottom = max(acc.Bottom, area.Intersection(band).Height)
	}
	if sp.Left > 0 {
		band := spanRect(0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1)
		acc.Left = max(acc.Left, area.Intersection(band).Width)
	}
	if sp.Right > 0 {
		band := spanRect(rootWidth-int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY)+1)
		acc.Right = max(acc.Right, area.Intersection(band).Width)
	}
}

func spanRect(x1, y1, x2, y2 int) geom.Rect {
	return geom.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
