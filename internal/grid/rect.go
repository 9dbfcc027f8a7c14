package grid

// Rect is an axis-aligned rectangle used for rooms. X1/Y1 is the top-left
// corner, X2/Y2 the bottom-right, edges inclusive.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// RectAt builds a Rect from a top-left corner plus width and height.
func RectAt(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Width returns the rectangle width in tiles.
func (r Rect) Width() int { return r.X2 - r.X1 + 1 }

// Height returns the rectangle height in tiles.
func (r Rect) Height() int { return r.Y2 - r.Y1 + 1 }

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Expand grows the rectangle by n tiles on every side. Used for spacing
// checks between rooms.
func (r Rect) Expand(n int) Rect {
	return Rect{X1: r.X1 - n, Y1: r.Y1 - n, X2: r.X2 + n, Y2: r.Y2 + n}
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Touches reports whether (x, y) lies inside or 8-adjacent to the rectangle.
func (r Rect) Touches(x, y int) bool {
	return r.Expand(1).Contains(x, y)
}
