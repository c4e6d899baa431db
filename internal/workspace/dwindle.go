package workspace

import "github.com/MurdeRM3L0DY/strata/internal/layout"

type nodeKind uint8

const (
	nodeEmpty nodeKind = iota
	nodeWindow
	nodeSplit
)

// Dwindle is the binary split tree over a workspace's windows. A node is
// either empty, a single window leaf, or a split holding two subtrees and the
// fraction of space given to the left one.
//
// Insertion always splits the deepest-rightmost leaf, which under the dwindle
// policy is the most recently added window. The split axis alternates with
// tree depth.
type Dwindle struct {
	kind  nodeKind
	win   *Window
	axis  layout.Axis
	ratio float64
	left  *Dwindle
	right *Dwindle
}

// NewDwindle returns an empty tree.
func NewDwindle() *Dwindle {
	return &Dwindle{kind: nodeEmpty}
}

// IsEmpty reports whether the tree holds no windows.
func (d *Dwindle) IsEmpty() bool {
	return d.kind == nodeEmpty
}

// NextSplit returns the axis the next insertion will split along: vertical at
// even depth of the insertion target, horizontal at odd.
func (d *Dwindle) NextSplit() layout.Axis {
	depth := 0
	for n := d; n.kind == nodeSplit; n = n.right {
		depth++
	}
	if depth%2 == 0 {
		return layout.Vertical
	}
	return layout.Horizontal
}

// Insert adds a window to the tree. An empty tree becomes a leaf; a leaf
// becomes a split keeping the existing window on the left; a deeper tree
// recurses into its right subtree so the newest leaf is the one divided.
func (d *Dwindle) Insert(win *Window, axis layout.Axis, ratio float64) {
	switch d.kind {
	case nodeEmpty:
		d.kind = nodeWindow
		d.win = win
	case nodeWindow:
		existing := d.win
		*d = Dwindle{
			kind:  nodeSplit,
			axis:  axis,
			ratio: ratio,
			left:  &Dwindle{kind: nodeWindow, win: existing},
			right: &Dwindle{kind: nodeWindow, win: win},
		}
	case nodeSplit:
		d.right.Insert(win, axis, ratio)
	}
}

// Remove deletes the leaf holding win and collapses its parent split into the
// sibling subtree. Removing the last window empties the tree; removing a
// window that is not present is a no-op.
func (d *Dwindle) Remove(win *Window) {
	switch d.kind {
	case nodeEmpty:
	case nodeWindow:
		if d.win == win {
			*d = Dwindle{kind: nodeEmpty}
		}
	case nodeSplit:
		d.left.Remove(win)
		d.right.Remove(win)
		if d.left.kind == nodeEmpty {
			*d = *d.right
		} else if d.right.kind == nodeEmpty {
			*d = *d.left
		}
	}
}

// CountLeaves returns the number of window leaves.
func (d *Dwindle) CountLeaves() int {
	switch d.kind {
	case nodeWindow:
		return 1
	case nodeSplit:
		return d.left.CountLeaves() + d.right.CountLeaves()
	default:
		return 0
	}
}

// Leaves returns the window leaves in left-to-right order.
func (d *Dwindle) Leaves() []*Window {
	var out []*Window
	d.walk(func(w *Window) { out = append(out, w) })
	return out
}

func (d *Dwindle) walk(fn func(*Window)) {
	switch d.kind {
	case nodeWindow:
		fn(d.win)
	case nodeSplit:
		d.left.walk(fn)
		d.right.walk(fn)
	}
}

// contains reports whether win is a leaf of the tree.
func (d *Dwindle) contains(win *Window) bool {
	switch d.kind {
	case nodeWindow:
		return d.win == win
	case nodeSplit:
		return d.left.contains(win) || d.right.contains(win)
	default:
		return false
	}
}

// apply recursively subdivides r and writes the resulting rectangle of every
// leaf into its window, shrunk by the inner gap.
func (d *Dwindle) apply(r layout.Rect, inner int) {
	switch d.kind {
	case nodeWindow:
		d.win.Rec = r.Shrink(inner)
	case nodeSplit:
		first, second := r.Split(d.axis, d.ratio)
		d.left.apply(first, inner)
		d.right.apply(second, inner)
	}
}
