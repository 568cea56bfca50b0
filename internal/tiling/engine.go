package tiling

import (
	"io"
	"log/slog"

	"github.com/1broseidon/montile/internal/config"
	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/platform"
	"github.com/1broseidon/montile/internal/tags"
)

// WindowOps is the subset of the platform backend the engine drives.
type WindowOps interface {
	MoveResize(id platform.WindowID, bounds geom.Rect) error
	Map(id platform.WindowID) error
	Unmap(id platform.WindowID) error
	Focus(id platform.WindowID) error
}

// Engine places the clients of a tag inside the area a monitor grants it.
type Engine struct {
	windows WindowOps
	mode    config.LayoutMode
	gap     int
	logger  *slog.Logger
}

// NewEngine creates a layout engine using the layout settings from cfg.
func NewEngine(windows WindowOps, cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{windows: windows, logger: logger}
	e.UpdateConfig(cfg)
	return e
}

// UpdateConfig picks up a new default layout and gap size.
func (e *Engine) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	e.mode = cfg.DefaultLayout
	e.gap = cfg.GapSize
}

func (e *Engine) modeFor(t *tags.Tag) config.LayoutMode {
	if t.Frame.Layout != "" {
		return t.Frame.Layout
	}
	return e.mode
}

// ApplyLayout moves every client of t into area.
func (e *Engine) ApplyLayout(t *tags.Tag, area geom.Rect) {
	if t == nil {
		return
	}
	if t.Floating {
		for _, c := range t.Frame.Clients {
			c.Floating = FitFloating(c.Floating, area)
			e.moveResize(c.ID, c.Floating)
		}
		return
	}

	var tiled []*tags.Client
	for _, c := range t.Frame.Clients {
		if c.Fullscreen {
			e.moveResize(c.ID, area)
			continue
		}
		tiled = append(tiled, c)
	}

	positions, err := CalculatePositions(len(tiled), area, e.modeFor(t), e.gap)
	if err != nil {
		e.logger.Warn("layout failed", "tag", t.Name, "clients", len(tiled), "error", err)
		return
	}
	for i, c := range tiled {
		e.moveResize(c.ID, positions[i])
	}
}

// UpdateFrameVisibility maps the clients that the layout shows. In max mode
// only the focused client stays mapped.
func (e *Engine) UpdateFrameVisibility(t *tags.Tag) {
	if t == nil {
		return
	}
	focused := t.Focused()
	maxMode := !t.Floating && e.modeFor(t) == config.LayoutModeMax
	for _, c := range t.Frame.Clients {
		if maxMode && c != focused && !c.Fullscreen {
			e.unmap(c.ID)
			continue
		}
		e.mapWindow(c.ID)
	}
}

// Show maps every client of t.
func (e *Engine) Show(t *tags.Tag) {
	if t == nil {
		return
	}
	for _, c := range t.Frame.Clients {
		e.mapWindow(c.ID)
	}
}

// Hide unmaps every client of t.
func (e *Engine) Hide(t *tags.Tag) {
	if t == nil {
		return
	}
	for _, c := range t.Frame.Clients {
		e.unmap(c.ID)
	}
}

// Focus gives the input focus to the focused client of t.
func (e *Engine) Focus(t *tags.Tag) {
	if t == nil {
		return
	}
	if c := t.Focused(); c != nil {
		if err := e.windows.Focus(c.ID); err != nil {
			e.logger.Debug("focus failed", "window", c.ID, "error", err)
		}
	}
}

// FocusedWindow returns the focused client window of t.
func (e *Engine) FocusedWindow(t *tags.Tag) (platform.WindowID, bool) {
	if t == nil {
		return 0, false
	}
	if c := t.Focused(); c != nil {
		return c.ID, true
	}
	return 0, false
}

// IsFullscreen reports whether the given client of t is fullscreen.
func (e *Engine) IsFullscreen(t *tags.Tag, id platform.WindowID) bool {
	if t == nil {
		return false
	}
	c := t.Client(id)
	return c != nil && c.Fullscreen
}

// IsSplit reports whether the tiled area of t is divided between several
// visible clients.
func (e *Engine) IsSplit(t *tags.Tag) bool {
	if t == nil || t.Floating || e.modeFor(t) == config.LayoutModeMax {
		return false
	}
	tiled := 0
	for _, c := range t.Frame.Clients {
		if !c.Fullscreen {
			tiled++
		}
	}
	return tiled > 1
}

// MoveFocusedClient moves the focused client of from onto to.
func (e *Engine) MoveFocusedClient(from, to *tags.Tag) bool {
	if from == nil || to == nil || from == to {
		return false
	}
	c := from.Focused()
	if c == nil {
		return false
	}
	from.RemoveClient(c.ID)
	to.AddClient(c)
	return true
}

func (e *Engine) moveResize(id platform.WindowID, r geom.Rect) {
	if err := e.windows.MoveResize(id, r); err != nil {
		e.logger.Debug("move/resize failed", "window", id, "error", err)
	}
}

func (e *Engine) mapWindow(id platform.WindowID) {
	if err := e.windows.Map(id); err != nil {
		e.logger.Debug("map failed", "window", id, "error", err)
	}
}

func (e *Engine) unmap(id platform.WindowID) {
	if err := e.windows.Unmap(id); err != nil {
		e.logger.Debug("unmap failed", "window", id, "error", err)
	}
}
