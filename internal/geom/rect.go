// Package geom holds the rectangle arithmetic shared by the monitor core,
// the layout engine and the command layer.
package geom

import (
	"fmt"
	"regexp"
	"strconv"
)

// Rect describes a rectangular region in root window coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns the covered area, zero for degenerate rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rectangle. The right and
// bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether both the x and y intervals of the two rectangles
// overlap as open intervals. Rectangles that only share an edge do not
// intersect.
func (r Rect) Intersects(o Rect) bool {
	return intervalsIntersect(r.X, r.Right(), o.X, o.Right()) &&
		intervalsIntersect(r.Y, r.Bottom(), o.Y, o.Bottom())
}

// Intersection returns the overlapping region. The result is empty when the
// rectangles do not intersect.
func (r Rect) Intersection(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Shrink removes the given amounts from each side.
func (r Rect) Shrink(up, right, down, left int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + up,
		Width:  r.Width - left - right,
		Height: r.Height - up - down,
	}
}

// Center returns the point in the middle of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// String formats the rectangle as WxH+X+Y.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Width, r.Height, r.X, r.Y)
}

func intervalsIntersect(a1, a2, b1, b2 int) bool {
	return b1 < a2 && a1 < b2
}

var rectPattern = regexp.MustCompile(`^(\d+)x(\d+)(?:([+-]\d+)([+-]\d+))?$`)

// Parse reads a rectangle in X geometry notation, WxH+X+Y. The offsets may be
// omitted, in which case they default to zero.
func Parse(s string) (Rect, error) {
	m := rectPattern.FindStringSubmatch(s)
	if m == nil {
		return Rect{}, fmt.Errorf("invalid rectangle %q: expected WxH+X+Y", s)
	}
	var r Rect
	fields := []*int{&r.Width, &r.Height, &r.X, &r.Y}
	for i, field := range fields {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Rect{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
		}
		*field = v
	}
	return r, nil
}

// ParseAll parses every argument as a rectangle, failing on the first
// malformed one.
func ParseAll(args []string) ([]Rect, error) {
	rects := make([]Rect, 0, len(args))
	for _, arg := range args {
		r, err := Parse(arg)
		if err != nil {
			return nil, err
		}
		rects = append(rects, r)
	}
	return rects, nil
}
