// Package tags holds the virtual workspaces that monitors display.
package tags

import (
	"github.com/1broseidon/montile/internal/config"
	"github.com/1broseidon/montile/internal/geom"
	"github.com/1broseidon/montile/internal/platform"
	"github.com/1broseidon/montile/internal/stack"
)

// Client is a managed window on a tag.
type Client struct {
	ID         platform.WindowID
	Fullscreen bool
	// Floating is the geometry used while the tag is floating.
	Floating geom.Rect

	slice *stack.Slice
}

// Frame is the tiling container of a tag. Clients are laid out in order and
// Selection indexes the focused one.
type Frame struct {
	Clients   []*Client
	Selection int
	// Layout overrides the engine default when set.
	Layout config.LayoutMode
}

// Focused returns the selected client, or nil when the frame is empty.
func (f *Frame) Focused() *Client {
	if f.Selection < 0 || f.Selection >= len(f.Clients) {
		return nil
	}
	return f.Clients[f.Selection]
}

// Tag is a named workspace with its own frame and stacking order.
type Tag struct {
	Name     string
	Floating bool
	Frame    Frame
	Stack    *stack.Stack
}

// New creates an empty tag.
func New(name string) *Tag {
	return &Tag{Name: name, Stack: stack.New()}
}

// AddClient appends a client to the frame, focuses it and puts it on top of
// the tag's stack.
func (t *Tag) AddClient(c *Client) {
	if c.slice == nil {
		c.slice = stack.NewWindowSlice(c.ID, true)
	}
	t.Frame.Clients = append(t.Frame.Clients, c)
	t.Frame.Selection = len(t.Frame.Clients) - 1
	t.Stack.Insert(c.slice)
}

// Client returns the client with the given window, or nil.
func (t *Tag) Client(id platform.WindowID) *Client {
	for _, c := range t.Frame.Clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveClient detaches the client with the given window and returns it.
func (t *Tag) RemoveClient(id platform.WindowID) *Client {
	for i, c := range t.Frame.Clients {
		if c.ID != id {
			continue
		}
		t.Frame.Clients = append(t.Frame.Clients[:i], t.Frame.Clients[i+1:]...)
		if t.Frame.Selection > i || t.Frame.Selection >= len(t.Frame.Clients) {
			t.Frame.Selection--
		}
		if t.Frame.Selection < 0 {
			t.Frame.Selection = 0
		}
		t.Stack.Remove(c.slice)
		return c
	}
	return nil
}

// Focused returns the focused client, or nil.
func (t *Tag) Focused() *Client {
	return t.Frame.Focused()
}

// RaiseClient puts the client on top of the tag's stack.
func (t *Tag) RaiseClient(c *Client) {
	if c != nil && c.slice != nil {
		t.Stack.Raise(c.slice)
	}
}
