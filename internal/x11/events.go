package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// ClientEvents are the root-window callbacks needed to manage clients. Nil
// callbacks are not connected.
type ClientEvents struct {
	MapRequest func(win xproto.Window)
	Destroy    func(win xproto.Window)
	Unmap      func(win xproto.Window)
}

// WatchClients connects the callbacks to the root window. ManageRoot must
// have succeeded for MapRequest to be delivered.
func (c *Connection) WatchClients(h ClientEvents) {
	if h.MapRequest != nil {
		xevent.MapRequestFun(func(_ *xgbutil.XUtil, ev xevent.MapRequestEvent) {
			h.MapRequest(ev.Window)
		}).Connect(c.XUtil, c.Root)
	}
	if h.Destroy != nil {
		xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
			h.Destroy(ev.Window)
		}).Connect(c.XUtil, c.Root)
	}
	if h.Unmap != nil {
		xevent.UnmapNotifyFun(func(_ *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
			h.Unmap(ev.Window)
		}).Connect(c.XUtil, c.Root)
	}
}

// UnwatchClients drops every callback connected to the root window.
func (c *Connection) UnwatchClients() {
	xevent.Detach(c.XUtil, c.Root)
}
