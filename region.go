package pixed

// Region is an axis-aligned rectangle in a drawable's local coordinate
// space. A Region with non-positive width or height is empty.
type Region struct {
	X, Y, Width, Height int
}

// Rect is shorthand for constructing a Region.
func Rect(x, y, w, h int) Region {
	return Region{X: x, Y: y, Width: w, Height: h}
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the exclusive right edge.
func (r Region) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Region) Bottom() int { return r.Y + r.Height }

// Intersect returns the intersection of r and o, and whether it is
// non-empty.
func (r Region) Intersect(o Region) (Region, bool) {
	x1 := maxInt(r.X, o.X)
	y1 := maxInt(r.Y, o.Y)
	x2 := minInt(r.Right(), o.Right())
	y2 := minInt(r.Bottom(), o.Bottom())
	if x1 >= x2 || y1 >= y2 {
		return Region{}, false
	}
	return Region{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// Union returns the smallest region containing both r and o. Empty
// operands are ignored.
func (r Region) Union(o Region) Region {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x1 := minInt(r.X, o.X)
	y1 := minInt(r.Y, o.Y)
	x2 := maxInt(r.Right(), o.Right())
	y2 := maxInt(r.Bottom(), o.Bottom())
	return Region{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Translate returns r shifted by (dx, dy).
func (r Region) Translate(dx, dy int) Region {
	return Region{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Contains reports whether the point (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// SameSize reports whether r and o have equal dimensions.
func (r Region) SameSize(o Region) bool {
	return r.Width == o.Width && r.Height == o.Height
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
