package workspace

import (
	"errors"
	"fmt"

	"github.com/MurdeRM3L0DY/strata/internal/layout"
	"github.com/MurdeRM3L0DY/strata/internal/output"
)

// ErrOutOfRange is returned for workspace ids outside the collection. An
// out-of-range id is a programming error in the caller (usually a script), so
// it surfaces loudly instead of degrading to a no-op.
var ErrOutOfRange = errors.New("workspace id out of range")

// defaultRatio is the split fraction given to the existing window when a new
// one divides its space.
const defaultRatio = 0.5

// Workspace owns an ordered window list, the outputs it is shown on, and the
// layout tree tiling those windows. The window list and the tree's leaf set
// stay in 1:1 correspondence after every operation.
type Workspace struct {
	windows []*Window
	outputs []*output.Output
	tree    *Dwindle
	gaps    layout.Gaps
}

// New returns an empty workspace using the given gaps during layout.
func New(gaps layout.Gaps) *Workspace {
	return &Workspace{tree: NewDwindle(), gaps: gaps}
}

// Windows returns the window list in insertion order.
func (ws *Workspace) Windows() []*Window {
	return ws.windows
}

// Tree returns the layout tree.
func (ws *Workspace) Tree() *Dwindle {
	return ws.tree
}

// ContainsWindow reports whether the window belongs to this workspace.
func (ws *Workspace) ContainsWindow(win *Window) bool {
	for _, w := range ws.windows {
		if w == win {
			return true
		}
	}
	return false
}

// AddWindow inserts the window into the list and the layout tree, then
// recomputes geometry. Adding a window already present re-inserts it, so the
// call is idempotent with respect to membership.
func (ws *Workspace) AddWindow(win *Window) {
	if ws.ContainsWindow(win) {
		ws.removeFromList(win)
		ws.tree.Remove(win)
	}
	ws.windows = append(ws.windows, win)
	ws.tree.Insert(win, ws.tree.NextSplit(), defaultRatio)
	ws.RefreshGeometry()
}

// RemoveWindow removes the window from the list and the tree, returning the
// removed handle or nil if it was not a member. Geometry is refreshed either
// way.
func (ws *Workspace) RemoveWindow(win *Window) *Window {
	var removed *Window
	if ws.ContainsWindow(win) {
		removed = win
		ws.removeFromList(win)
	}
	ws.tree.Remove(win)
	ws.RefreshGeometry()
	return removed
}

func (ws *Workspace) removeFromList(win *Window) {
	kept := ws.windows[:0]
	for _, w := range ws.windows {
		if w != win {
			kept = append(kept, w)
		}
	}
	ws.windows = kept
}

// WindowUnder hit-tests the point against each window's bounding box in list
// order, then against the surface input region, and returns the first match
// together with its render location.
func (ws *Workspace) WindowUnder(p layout.Point) (*Window, layout.Point, bool) {
	for _, w := range ws.windows {
		if !w.BBox().Contains(p) {
			continue
		}
		loc := w.RenderLocation()
		local := layout.Point{X: p.X - loc.X, Y: p.Y - loc.Y}
		if w.Surface().InputRegionContains(local) {
			return w, loc, true
		}
	}
	return nil, layout.Point{}, false
}

// Outputs returns the outputs this workspace is attached to.
func (ws *Workspace) Outputs() []*output.Output {
	return ws.outputs
}

// AddOutput attaches an output and refreshes geometry for the new bounds.
func (ws *Workspace) AddOutput(o *output.Output) {
	ws.outputs = append(ws.outputs, o)
	ws.RefreshGeometry()
}

// RemoveOutput detaches an output; unknown outputs are ignored.
func (ws *Workspace) RemoveOutput(o *output.Output) {
	kept := ws.outputs[:0]
	for _, cur := range ws.outputs {
		if cur != o {
			kept = append(kept, cur)
		}
	}
	ws.outputs = kept
	ws.RefreshGeometry()
}

// OutputGeometry returns the geometry of an attached output, or false if the
// output is not attached here.
func (ws *Workspace) OutputGeometry(o *output.Output) (layout.Rect, bool) {
	for _, cur := range ws.outputs {
		if cur == o {
			return cur.Geometry(), true
		}
	}
	return layout.Rect{}, false
}

// Bounds is the union of the attached outputs' geometry. With no outputs it is
// the zero rect and layout degenerates accordingly.
func (ws *Workspace) Bounds() layout.Rect {
	var r layout.Rect
	for _, o := range ws.outputs {
		r = r.Union(o.Geometry())
	}
	return r
}

// RefreshGeometry recomputes every window rectangle from the current tree and
// bounds. Runs after every membership change.
func (ws *Workspace) RefreshGeometry() {
	bounds := ws.Bounds().Shrink(ws.gaps.Outer)
	ws.tree.apply(bounds, ws.gaps.Inner)
}

// Workspaces is the ordered workspace collection plus the active index.
type Workspaces struct {
	list    []*Workspace
	current int
}

// NewWorkspaces creates amount workspaces sharing the same gaps. At least one
// workspace always exists.
func NewWorkspaces(amount int, gaps layout.Gaps) *Workspaces {
	if amount < 1 {
		amount = 1
	}
	list := make([]*Workspace, amount)
	for i := range list {
		list[i] = New(gaps)
	}
	return &Workspaces{list: list}
}

// Len returns the number of workspaces.
func (w *Workspaces) Len() int {
	return len(w.list)
}

// All returns the workspaces in order.
func (w *Workspaces) All() []*Workspace {
	return w.list
}

// Get returns workspace id, or ErrOutOfRange.
func (w *Workspaces) Get(id int) (*Workspace, error) {
	if id < 0 || id >= len(w.list) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, id, len(w.list))
	}
	return w.list[id], nil
}

// Current returns the active workspace.
func (w *Workspaces) Current() *Workspace {
	return w.list[w.current]
}

// CurrentIndex returns the active workspace id.
func (w *Workspaces) CurrentIndex() int {
	return w.current
}

// Activate switches the active workspace. It does not touch input focus; the
// caller decides what gains focus afterwards.
func (w *Workspaces) Activate(id int) error {
	if id < 0 || id >= len(w.list) {
		return fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, id, len(w.list))
	}
	w.current = id
	return nil
}

// FromWindow finds the workspace owning the window.
func (w *Workspaces) FromWindow(win *Window) (*Workspace, bool) {
	for _, ws := range w.list {
		if ws.ContainsWindow(win) {
			return ws, true
		}
	}
	return nil, false
}

// MoveWindowToWorkspace removes the window from whichever workspace holds it
// and inserts it into the target, refreshing geometry on both sides. Moving a
// window not present anywhere is a no-op; an out-of-range target is an error.
func (w *Workspaces) MoveWindowToWorkspace(win *Window, target int) error {
	dst, err := w.Get(target)
	if err != nil {
		return err
	}
	src, ok := w.FromWindow(win)
	if !ok {
		return nil
	}
	if removed := src.RemoveWindow(win); removed != nil {
		dst.AddWindow(removed)
	}
	return nil
}

// AllWindows returns every window across all workspaces.
func (w *Workspaces) AllWindows() []*Window {
	var out []*Window
	for _, ws := range w.list {
		out = append(out, ws.windows...)
	}
	return out
}
