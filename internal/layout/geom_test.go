package layout

import "testing"

func TestSplitVerticalTilesExactly(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1001, Height: 800}
	left, right := r.Split(Vertical, 0.5)
	if left.Width+right.Width != r.Width {
		t.Fatalf("expected halves to tile width %d, got %d+%d", r.Width, left.Width, right.Width)
	}
	if right.X != left.X+left.Width {
		t.Fatalf("expected right half to start at %d, got %d", left.X+left.Width, right.X)
	}
	if left.Height != r.Height || right.Height != r.Height {
		t.Fatalf("expected heights unchanged by a vertical split")
	}
}

func TestSplitHorizontalFloorsFirstHalf(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 801}
	top, bottom := r.Split(Horizontal, 0.5)
	if top.Height != 400 {
		t.Fatalf("expected floored top height 400, got %d", top.Height)
	}
	if bottom.Height != 401 {
		t.Fatalf("expected bottom to take the remainder 401, got %d", bottom.Height)
	}
	if bottom.Y != 420 {
		t.Fatalf("expected bottom to start at 420, got %d", bottom.Y)
	}
}

func TestSplitClampsRatio(t *testing.T) {
	r := Rect{Width: 100, Height: 100}
	first, second := r.Split(Vertical, 1.5)
	if first.Width != 100 || second.Width != 0 {
		t.Fatalf("expected ratio to clamp to 1, got %d/%d", first.Width, second.Width)
	}
	first, second = r.Split(Vertical, -1)
	if first.Width != 0 || second.Width != 100 {
		t.Fatalf("expected ratio to clamp to 0, got %d/%d", first.Width, second.Width)
	}
}

func TestContainsIsHalfOpen(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(Point{X: 0, Y: 0}) {
		t.Fatal("expected origin to be inside")
	}
	if r.Contains(Point{X: 10, Y: 5}) {
		t.Fatal("expected right edge to be outside")
	}
	if r.Contains(Point{X: 5, Y: 10}) {
		t.Fatal("expected bottom edge to be outside")
	}
}

func TestUnionIgnoresZeroAreaRects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if got := a.Union(Rect{}); got != a {
		t.Fatalf("expected union with empty rect to return original, got %+v", got)
	}
	b := Rect{X: 100, Y: 0, Width: 100, Height: 100}
	u := a.Union(b)
	if u != (Rect{X: 0, Y: 0, Width: 200, Height: 100}) {
		t.Fatalf("unexpected union %+v", u)
	}
}

func TestShrinkCollapsesInsteadOfInverting(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	got := r.Shrink(8)
	if got.Width != 0 || got.Height != 0 {
		t.Fatalf("expected degenerate rect to collapse, got %+v", got)
	}
}

func TestIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 10, Y: 0, Width: 10, Height: 10}
	if a.Intersects(b) {
		t.Fatal("expected edge-adjacent rects not to intersect")
	}
	c := Rect{X: 9, Y: 9, Width: 5, Height: 5}
	if !a.Intersects(c) {
		t.Fatal("expected overlapping rects to intersect")
	}
}
