package tags

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrExists is returned when adding a tag whose name is taken.
	ErrExists = errors.New("tag already exists")
	// ErrInvalidName is returned for empty tag names.
	ErrInvalidName = errors.New("invalid tag name")
	// ErrOutOfRange is returned for absolute tag indexes past the end.
	ErrOutOfRange = errors.New("tag index out of range")
)

// Registry owns the ordered set of tags.
type Registry struct {
	tags []*Tag
}

// NewRegistry creates a registry holding one tag per distinct name.
func NewRegistry(names ...string) *Registry {
	r := &Registry{}
	for _, name := range names {
		_, _ = r.Add(name)
	}
	return r
}

// Add creates a tag. It fails when the name is empty or already used.
func (r *Registry) Add(name string) (*Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if r.Find(name) != nil {
		return nil, fmt.Errorf("%w: %q", ErrExists, name)
	}
	t := New(name)
	r.tags = append(r.tags, t)
	return t, nil
}

// Find returns the tag with the given name, or nil.
func (r *Registry) Find(name string) *Tag {
	for _, t := range r.tags {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// All returns the tags in creation order.
func (r *Registry) All() []*Tag {
	return append([]*Tag(nil), r.tags...)
}

// Names returns the tag names in creation order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tags))
	for i, t := range r.tags {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tags.
func (r *Registry) Len() int {
	return len(r.tags)
}

// IndexOf returns the position of t, or -1.
func (r *Registry) IndexOf(t *Tag) int {
	for i, existing := range r.tags {
		if existing == t {
			return i
		}
	}
	return -1
}

// FirstUnused returns the first tag for which inUse is false, or nil.
func (r *Registry) FirstUnused(inUse func(*Tag) bool) *Tag {
	for _, t := range r.tags {
		if !inUse(t) {
			return t
		}
	}
	return nil
}

// EnsureUnused returns the first unused tag, creating a fresh "default" tag
// when every existing one is in use.
func (r *Registry) EnsureUnused(inUse func(*Tag) bool) *Tag {
	if t := r.FirstUnused(inUse); t != nil {
		return t
	}
	name := "default"
	for i := 2; r.Find(name) != nil; i++ {
		name = "default" + strconv.Itoa(i)
	}
	t, _ := r.Add(name)
	return t
}

// ByIndex resolves a tag index expression. "+N" and "-N" are relative to
// current and wrap around; anything else is an absolute index. With
// skipVisible a relative step keeps moving in the same direction past tags
// for which visible is true. It returns current when the walk comes back to
// it.
func (r *Registry) ByIndex(expr string, current *Tag, skipVisible bool, visible func(*Tag) bool) (*Tag, error) {
	if len(r.tags) == 0 {
		return nil, ErrOutOfRange
	}
	index, err := strconv.Atoi(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid tag index %q", expr)
	}

	if !strings.HasPrefix(expr, "+") && !strings.HasPrefix(expr, "-") {
		if index < 0 || index >= len(r.tags) {
			return nil, fmt.Errorf("%w: %d", ErrOutOfRange, index)
		}
		return r.tags[index], nil
	}

	if index == 0 {
		return current, nil
	}
	start := r.IndexOf(current)
	if start < 0 {
		start = 0
	}
	n := len(r.tags)
	next := mod(start+index, n)
	if skipVisible && visible != nil {
		step := 1
		if index < 0 {
			step = -1
		}
		for next != start && visible(r.tags[next]) {
			next = mod(next+step, n)
		}
	}
	return r.tags[next], nil
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
