// Package stack models the stacking order of windows. A stack is a list of
// slices ordered top to bottom. A slice is either a single window or a
// group whose windows are supplied by its Source, so nested stacks (a
// monitor holding its tag's stack) flatten naturally.
package stack

import "github.com/1broseidon/montile/internal/platform"

// Source yields the windows of a group slice, top first.
type Source interface {
	StackWindows(onlyClients bool) []platform.WindowID
}

// Slice is one entry of a Stack.
type Slice struct {
	window platform.WindowID
	client bool
	source Source
}

// NewWindowSlice wraps a single window. Client slices count when only
// clients are requested.
func NewWindowSlice(id platform.WindowID, client bool) *Slice {
	return &Slice{window: id, client: client}
}

// NewGroupSlice wraps a source of windows.
func NewGroupSlice(src Source) *Slice {
	return &Slice{source: src}
}

// Window returns the wrapped window of a window slice.
func (s *Slice) Window() platform.WindowID {
	return s.window
}

func (s *Slice) appendWindows(dst []platform.WindowID, onlyClients bool) []platform.WindowID {
	if s.source != nil {
		return append(dst, s.source.StackWindows(onlyClients)...)
	}
	if onlyClients && !s.client {
		return dst
	}
	return append(dst, s.window)
}

// Stack is an ordered list of slices, index 0 on top.
type Stack struct {
	slices []*Slice
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Insert places a slice on top. Inserting a slice that is already present
// moves it to the top.
func (s *Stack) Insert(sl *Slice) {
	s.Remove(sl)
	s.slices = append([]*Slice{sl}, s.slices...)
}

// Remove drops a slice and reports whether it was present.
func (s *Stack) Remove(sl *Slice) bool {
	for i, existing := range s.slices {
		if existing == sl {
			s.slices = append(s.slices[:i], s.slices[i+1:]...)
			return true
		}
	}
	return false
}

// Raise moves a present slice to the top. Unknown slices are ignored.
func (s *Stack) Raise(sl *Slice) {
	if s.Remove(sl) {
		s.slices = append([]*Slice{sl}, s.slices...)
	}
}

// Contains reports whether the slice is part of the stack.
func (s *Stack) Contains(sl *Slice) bool {
	for _, existing := range s.slices {
		if existing == sl {
			return true
		}
	}
	return false
}

// Len returns the number of slices.
func (s *Stack) Len() int {
	return len(s.slices)
}

// Windows flattens the stack into windows, top first.
func (s *Stack) Windows(onlyClients bool) []platform.WindowID {
	var out []platform.WindowID
	for _, sl := range s.slices {
		out = sl.appendWindows(out, onlyClients)
	}
	return out
}

// WindowCount returns len(Windows(onlyClients)).
func (s *Stack) WindowCount(onlyClients bool) int {
	return len(s.Windows(onlyClients))
}

// StackWindows lets a stack be used as the source of a group slice.
func (s *Stack) StackWindows(onlyClients bool) []platform.WindowID {
	return s.Windows(onlyClients)
}
