// Package workspace implements the workspace collection and the dwindle
// tiling tree that assigns every managed window a rectangle.
package workspace

import "github.com/MurdeRM3L0DY/strata/internal/layout"

// Surface is the protocol-layer window behind a managed Window. The display
// server side (client connections, commits, popups) lives outside this
// package; the layout engine only needs geometry and a close request.
type Surface interface {
	// ID uniquely identifies the surface for its lifetime.
	ID() uint64
	// Bounds is the buffer bounding box relative to the surface origin,
	// including client-side decoration.
	Bounds() layout.Rect
	// Geometry is the visible window geometry within the buffer.
	Geometry() layout.Rect
	// InputRegionContains reports whether a surface-local point accepts input.
	InputRegionContains(p layout.Point) bool
	// RequestClose asks the client to close the window.
	RequestClose()
}

// Window pairs a surface with the rectangle the layout engine assigned to it.
// The handle is shared: the owning workspace's window list and the layout
// tree leaves reference the same *Window, and the event loop is the only
// mutator at any instant.
type Window struct {
	surface Surface

	// Rec is the logical-coordinate position and size assigned by the
	// layout engine.
	Rec layout.Rect
}

// NewWindow wraps a mapped surface.
func NewWindow(s Surface) *Window {
	return &Window{surface: s}
}

// Surface returns the protocol-layer handle.
func (w *Window) Surface() Surface {
	return w.surface
}

// RenderLocation is where the buffer is drawn so that the visible geometry
// lands on Rec: the assigned origin pulled back by the decoration offset.
func (w *Window) RenderLocation() layout.Point {
	g := w.surface.Geometry()
	return layout.Point{X: w.Rec.X - g.X, Y: w.Rec.Y - g.Y}
}

// BBox is the buffer bounding box translated to its on-screen position.
func (w *Window) BBox() layout.Rect {
	b := w.surface.Bounds()
	loc := w.RenderLocation()
	b.X += loc.X
	b.Y += loc.Y
	return b
}
