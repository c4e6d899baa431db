package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MurdeRM3L0DY/strata/internal/config"
	"github.com/MurdeRM3L0DY/strata/internal/input"
	"github.com/MurdeRM3L0DY/strata/internal/layout"
	"github.com/MurdeRM3L0DY/strata/internal/output"
	"github.com/MurdeRM3L0DY/strata/internal/proc"
	"github.com/MurdeRM3L0DY/strata/internal/workspace"
)

type fakeSurface struct {
	id     uint64
	size   layout.Rect
	closed bool
}

func (s *fakeSurface) ID() uint64                              { return s.id }
func (s *fakeSurface) Bounds() layout.Rect                     { return s.size }
func (s *fakeSurface) Geometry() layout.Rect                   { return s.size }
func (s *fakeSurface) InputRegionContains(p layout.Point) bool { return s.size.Contains(p) }
func (s *fakeSurface) RequestClose()                           { s.closed = true }

func newComp(t *testing.T) *Compositor {
	t.Helper()
	cfg := config.DefaultConfig
	c := New(&cfg)
	for _, ws := range c.Workspaces.All() {
		ws.AddOutput(output.New("HDMI-A-1", layout.Rect{Width: 1920, Height: 1080}))
	}
	return c
}

// mapWindow maps a fake surface and sizes its buffer to the assigned rect,
// like a client acking the configure.
func mapWindow(c *Compositor, id uint64) (*workspace.Window, *fakeSurface) {
	s := &fakeSurface{id: id}
	w := c.MapWindow(s)
	ws, _ := c.Workspaces.FromWindow(w)
	for _, win := range ws.Windows() {
		fake := win.Surface().(*fakeSurface)
		fake.size = layout.Rect{Width: win.Rec.Width, Height: win.Rec.Height}
	}
	return w, s
}

func TestCloseWindowUnderPointer(t *testing.T) {
	c := newComp(t)
	_, left := mapWindow(c, 1)
	_, right := mapWindow(c, 2)

	c.SetPointer(layout.Point{X: 100, Y: 540})
	c.CloseWindow()
	assert.True(t, left.closed)
	assert.False(t, right.closed)
}

func TestCloseWindowNoTarget(t *testing.T) {
	c := newComp(t)
	c.SetPointer(layout.Point{X: 100, Y: 100})
	c.CloseWindow() // nothing mapped, must not panic
}

func TestSwitchToWorkspace(t *testing.T) {
	c := newComp(t)
	require.NoError(t, c.SwitchToWorkspace(3))
	assert.Equal(t, 3, c.Workspaces.CurrentIndex())

	err := c.SwitchToWorkspace(99)
	assert.Error(t, err)
	assert.Equal(t, 3, c.Workspaces.CurrentIndex())
}

func TestMoveWindowToWorkspace(t *testing.T) {
	c := newComp(t)
	w, _ := mapWindow(c, 1)
	c.SetPointer(layout.Point{X: 10, Y: 10})

	require.NoError(t, c.MoveWindowToWorkspace(2))

	ws, ok := c.Workspaces.FromWindow(w)
	require.True(t, ok)
	dst, err := c.Workspaces.Get(2)
	require.NoError(t, err)
	assert.Same(t, dst, ws)
	assert.Equal(t, 0, c.Workspaces.CurrentIndex())
}

func TestMoveWindowToWorkspaceNoWindow(t *testing.T) {
	c := newComp(t)
	c.SetPointer(layout.Point{X: 10, Y: 10})
	assert.NoError(t, c.MoveWindowToWorkspace(2))
}

func TestFollowWindowMove(t *testing.T) {
	c := newComp(t)
	w, _ := mapWindow(c, 1)
	c.SetPointer(layout.Point{X: 10, Y: 10})

	require.NoError(t, c.FollowWindowMove(4))
	assert.Equal(t, 4, c.Workspaces.CurrentIndex())
	ws, ok := c.Workspaces.FromWindow(w)
	require.True(t, ok)
	assert.Same(t, c.Workspaces.Current(), ws)
}

func TestUnmapWindow(t *testing.T) {
	c := newComp(t)
	w, _ := mapWindow(c, 1)
	c.UnmapWindow(w)
	_, ok := c.Workspaces.FromWindow(w)
	assert.False(t, ok)
	c.UnmapWindow(w) // already gone, no-op
}

func TestSpawnUsesExecHook(t *testing.T) {
	c := newComp(t)
	var got []string
	c.SetExec(func(argv []string) (*proc.Child, error) {
		got = argv
		return proc.Spawn([]string{"/bin/true"})
	})

	child, err := c.SpawnShell("kitty")
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/sh", "-c", "kitty"}, got)
	tracked, ok := c.Proc.Child(child.Pid())
	require.True(t, ok)
	assert.Same(t, child, tracked)
	child.Kill()
	child.Wait()
}

func TestSpawnNotifiesSpawnHook(t *testing.T) {
	c := newComp(t)
	var adopted *proc.Child
	c.OnSpawn(func(ch *proc.Child) { adopted = ch })

	child, err := c.Spawn([]string{"/bin/true"})
	require.NoError(t, err)
	assert.Same(t, child, adopted)
	child.Wait()
}

func TestQuitSignal(t *testing.T) {
	c := newComp(t)
	c.Quit() // no hook yet, no-op

	fired := 0
	c.OnQuit(func() { fired++ })
	c.Quit()
	assert.Equal(t, 1, fired)
}

func TestHandleModifiersFeedsChordState(t *testing.T) {
	c := newComp(t)

	press := func(sym input.Keysym, dep uint32) {
		c.HandleModifiers(input.KeyboardEvent{
			Keysym:  sym,
			Pressed: true,
			Mods:    input.ModifierState{Depressed: dep},
		})
	}
	press(input.KeyControlL, 1<<2)
	press(input.KeyAltL, 1<<2|1<<3)

	pat := c.PatternFor(input.KeyReturn)
	assert.Equal(t, input.ModControlL|input.ModAltL, pat.Mods)
	assert.Equal(t, input.KeyReturn, pat.Key)
}

func TestSetRepeatInfoClampsByMagnitude(t *testing.T) {
	c := newComp(t)
	var seen InputSettings
	c.OnInputSettings(func(s InputSettings) { seen = s })

	c.SetRepeatInfo(-30, -400)
	assert.Equal(t, 30, c.Input.RepeatRate)
	assert.Equal(t, 400, c.Input.RepeatDelay)
	assert.Equal(t, c.Input, seen)
}

func TestUpdateXkbMergesFields(t *testing.T) {
	c := newComp(t)
	c.Input.Xkb = config.Xkb{Layout: "us", Variant: "intl"}

	c.UpdateXkb(config.Xkb{Layout: "de"})
	assert.Equal(t, "de", c.Input.Xkb.Layout)
	assert.Equal(t, "intl", c.Input.Xkb.Variant)
}

func TestFocusFollowsWorkspaceSwitch(t *testing.T) {
	c := newComp(t)
	var focused *workspace.Window
	c.OnFocusChange(func(w *workspace.Window) { focused = w })

	w, _ := mapWindow(c, 1)
	c.SetPointer(layout.Point{X: 10, Y: 10})

	require.NoError(t, c.SwitchToWorkspace(1))
	assert.Nil(t, focused)

	require.NoError(t, c.SwitchToWorkspace(0))
	assert.Same(t, w, focused)
}
