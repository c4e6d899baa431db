// Package layout provides integer rectangle geometry in logical pixels.
//
// All coordinates are logical units. Fractional splits round by flooring the
// first half and giving the remainder to the second, so two halves of a split
// always tile their parent exactly.
package layout

// Point is a position in logical coordinates.
type Point struct {
	X int
	Y int
}

// Rect is a position plus size in logical coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Gaps holds the inner (between windows) and outer (screen edge) gaps applied
// during layout calculations.
type Gaps struct {
	Inner int
	Outer int
}

// Axis selects the direction of the dividing line of a split.
type Axis int

const (
	// Vertical splits a rect with a vertical line into left and right halves.
	Vertical Axis = iota
	// Horizontal splits a rect with a horizontal line into top and bottom halves.
	Horizontal
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Next returns the alternating axis, the dwindle progression.
func (a Axis) Next() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Area returns Width*Height; degenerate rects count as zero.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Origin returns the rect's top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Union returns the smallest rect covering both r and other. A zero-area rect
// is treated as absent.
func (r Rect) Union(other Rect) Rect {
	if r.Area() == 0 {
		return other
	}
	if other.Area() == 0 {
		return r
	}
	x1 := min(r.X, other.X)
	y1 := min(r.Y, other.Y)
	x2 := max(r.X+r.Width, other.X+other.Width)
	y2 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Split divides the rect along the given axis at the given fraction of space
// assigned to the first half. The first half size is floored; the second half
// takes the remainder, so first and second always tile r exactly.
func (r Rect) Split(axis Axis, ratio float64) (first, second Rect) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	first, second = r, r
	switch axis {
	case Vertical:
		w := int(float64(r.Width) * ratio)
		first.Width = w
		second.X = r.X + w
		second.Width = r.Width - w
	case Horizontal:
		h := int(float64(r.Height) * ratio)
		first.Height = h
		second.Y = r.Y + h
		second.Height = r.Height - h
	}
	return first, second
}

// Shrink insets the rect by the given margin on every side. The rect
// collapses to zero size rather than inverting.
func (r Rect) Shrink(margin int) Rect {
	r.X += margin
	r.Y += margin
	r.Width -= margin * 2
	r.Height -= margin * 2
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// Intersects reports whether two rects overlap in a region of nonzero area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height &&
		r.Area() > 0 && other.Area() > 0
}
