package daemon

import (
	"github.com/1broseidon/montile/internal/platform"
	"github.com/1broseidon/montile/internal/tags"
)

// manage adds a newly mapped window to the tag of the selected monitor.
// Windows that should not be tiled, such as docks, are only mapped.
func (d *Daemon) manage(id platform.WindowID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.managed[id]; ok || !d.backend.IsManageable(id) {
		d.mapWindow(id)
		return
	}
	m := d.monitors.Current()
	if m == nil || m.Tag() == nil {
		d.mapWindow(id)
		return
	}

	t := m.Tag()
	t.AddClient(&tags.Client{ID: id, Fullscreen: d.backend.IsFullscreen(id)})
	d.managed[id] = struct{}{}
	d.order = append(d.order, id)
	d.logger.Debug("client managed",
		"window", id,
		"title", d.backend.WindowTitle(id),
		"tag", t.Name)

	d.mapWindow(id)
	_ = d.monitors.ApplyLayout(m)
	d.publishClientList()
}

// unmanage forgets a destroyed window and lays out the monitor showing its
// tag.
func (d *Daemon) unmanage(id platform.WindowID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.managed[id]; !ok {
		return
	}
	delete(d.managed, id)
	for i, w := range d.order {
		if w == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}

	// Clients may have been shifted between tags since they were managed.
	for _, t := range d.tags.All() {
		if t.RemoveClient(id) == nil {
			continue
		}
		d.logger.Debug("client unmanaged", "window", id, "tag", t.Name)
		if m := d.monitors.ByTag(t); m != nil {
			_ = d.monitors.ApplyLayout(m)
		}
		break
	}
	d.publishClientList()
}

func (d *Daemon) mapWindow(id platform.WindowID) {
	if err := d.backend.Map(id); err != nil {
		d.logger.Debug("map failed", "window", id, "error", err)
	}
}

func (d *Daemon) publishClientList() {
	if err := d.backend.SetClientList(append([]platform.WindowID(nil), d.order...)); err != nil {
		d.logger.Debug("failed to publish client list", "error", err)
	}
}

// Clients returns the managed windows in the order they were mapped.
func (d *Daemon) Clients() []platform.WindowID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]platform.WindowID(nil), d.order...)
}
