package selection

// Rect is an axis-aligned box in layout space. Top-left origin; Right and
// Bottom are exclusive edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NormalizedRect builds a Rect from any two opposite corners, so a drag in
// any direction produces the same box.
func NormalizedRect(x1, y1, x2, y2 float64) Rect {
	r := Rect{Left: x1, Top: y1, Right: x2, Bottom: y2}
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Intersects reports whether two boxes share any area.
func (r Rect) Intersects(o Rect) bool {
	return o.Right > r.Left && o.Left < r.Right &&
		o.Bottom > r.Top && o.Top < r.Bottom
}

// Item is one laid-out element eligible for marquee selection.
type Item struct {
	ID     string
	Bounds Rect
}

// Marquee selects every item whose bounds intersect the box. The result
// replaces the current selection; pass additive to union with it instead
// (the modifier-held behavior).
func Marquee(box Rect, items []Item, current Set, additive bool) Set {
	hit := NewSet()
	for _, it := range items {
		if box.Intersects(it.Bounds) {
			hit[it.ID] = struct{}{}
		}
	}
	if additive {
		return Union(current, hit)
	}
	return hit
}
