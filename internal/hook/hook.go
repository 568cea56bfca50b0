// Package hook delivers tag_changed notifications to subscribers and keeps
// the EWMH desktop properties in sync with the selected monitor.
package hook

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/1broseidon/montile/internal/tags"
)

// DesktopSetter publishes desktop state on the root window.
type DesktopSetter interface {
	SetCurrentDesktop(index int) error
	SetDesktopNames(names []string) error
}

// Emitter fans hook lines out to subscribers. Slow subscribers lose lines
// rather than blocking the window manager.
type Emitter struct {
	mu     sync.Mutex
	subs   map[int]chan string
	nextID int

	tags    *tags.Registry
	desktop DesktopSetter
	logger  *slog.Logger
}

// NewEmitter creates an emitter. desktop may be nil when no display is
// attached.
func NewEmitter(registry *tags.Registry, desktop DesktopSetter, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Emitter{
		subs:    map[int]chan string{},
		tags:    registry,
		desktop: desktop,
		logger:  logger,
	}
}

// Subscribe returns a channel receiving every hook line emitted from now on
// and a function that ends the subscription and closes the channel.
func (e *Emitter) Subscribe(buffer int) (<-chan string, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan string, buffer)

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = ch
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Subscribers returns the number of active subscriptions.
func (e *Emitter) Subscribers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}

// Emit sends one hook line built from the tab-joined arguments.
func (e *Emitter) Emit(args ...string) {
	line := strings.Join(args, "\t")

	e.mu.Lock()
	defer e.mu.Unlock()
	for id, ch := range e.subs {
		select {
		case ch <- line:
		default:
			e.logger.Warn("hook subscriber lagging, dropping line", "subscriber", id, "hook", args[0])
		}
	}
}

// TagChanged emits "tag_changed TAG MONITOR".
func (e *Emitter) TagChanged(t *tags.Tag, monitor int) {
	e.Emit("tag_changed", t.Name, strconv.Itoa(monitor))
}

// UpdateCurrentDesktop sets _NET_CURRENT_DESKTOP to the index of t.
func (e *Emitter) UpdateCurrentDesktop(t *tags.Tag) {
	if e.desktop == nil || t == nil {
		return
	}
	index := e.tags.IndexOf(t)
	if index < 0 {
		return
	}
	if err := e.desktop.SetCurrentDesktop(index); err != nil {
		e.logger.Debug("failed to set current desktop", "index", index, "error", err)
	}
}

// UpdateDesktopNames publishes the tag names as desktops.
func (e *Emitter) UpdateDesktopNames() {
	if e.desktop == nil {
		return
	}
	if err := e.desktop.SetDesktopNames(e.tags.Names()); err != nil {
		e.logger.Debug("failed to set desktop names", "error", err)
	}
}

// Close ends every subscription.
func (e *Emitter) Close() {
	e.mu.Lock()
	subs := e.subs
	e.subs = map[int]chan string{}
	e.mu.Unlock()
	for _, ch := range subs {
		close(ch)
	}
}
