package geom

// Disjoin returns pairwise disjoint rectangles whose union equals the union of
// the input. Rectangles are inserted one at a time: where a new rectangle
// overlaps an already placed one, the placed rectangle is replaced by the
// overlap and the remaining border pieces of both are inserted after it.
// The output order is deterministic for a given input order. Degenerate input
// rectangles are ignored since they cover nothing.
func Disjoin(rects []Rect) []Rect {
	var cover disjointList
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		cover.insert(0, r)
	}
	return cover.rects
}

type disjointList struct {
	rects []Rect
}

// insert places r into the cover, scanning from index start. Every entry
// before start is known to be disjoint from r.
func (l *disjointList) insert(start int, r Rect) {
	for i := start; i < len(l.rects); i++ {
		head := l.rects[i]
		if !head.Intersects(r) {
			continue
		}
		center := head.Intersection(r)
		l.rects[i] = center
		l.insertBorder(i+1, head, center)
		l.insertBorder(i+1, r, center)
		return
	}
	l.rects = append(l.rects, r)
}

// insertBorder inserts the parts of large that lie outside center, which must
// be contained in large. The pieces are the full-width band above center, the
// bands left and right of it and the full-width band below.
func (l *disjointList) insertBorder(start int, large, center Rect) {
	pieces := []Rect{
		span(large.X, large.Y, large.Right(), center.Y),
		span(large.X, center.Y, center.X, center.Bottom()),
		span(center.Right(), center.Y, large.Right(), center.Bottom()),
		span(large.X, center.Bottom(), large.Right(), large.Bottom()),
	}
	for _, p := range pieces {
		if p.Empty() {
			continue
		}
		l.insert(start, p)
	}
}

func span(x1, y1, x2, y2 int) Rect {
	if x1 >= x2 || y1 >= y2 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
