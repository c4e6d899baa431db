// Package output models the logical displays a workspace can be attached to.
package output

import "github.com/MurdeRM3L0DY/strata/internal/layout"

// Output represents one display in the global logical coordinate space.
type Output struct {
	Name    string
	Geo     layout.Rect
	Scale   float64
	Primary bool
}

// New returns an output with the given name and geometry at scale 1.
func New(name string, geo layout.Rect) *Output {
	return &Output{Name: name, Geo: geo, Scale: 1.0}
}

// Geometry returns the output's rectangle in logical coordinates.
func (o *Output) Geometry() layout.Rect {
	return o.Geo
}

// Contains reports whether the point lies on this output.
func (o *Output) Contains(p layout.Point) bool {
	return o.Geo.Contains(p)
}
