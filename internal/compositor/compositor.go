// Package compositor holds the mutable compositor state: workspaces, chord
// modifiers, keybinds, runtime input settings, and spawned processes.
//
// There is exactly one legitimate mutator at any instant: the event-loop
// driver, or a script callback running inside a scoped loan of this object
// (see internal/script). No locks; the discipline is single-threaded
// ownership, not mutual exclusion.
package compositor

import (
	"github.com/MurdeRM3L0DY/strata/internal/config"
	"github.com/MurdeRM3L0DY/strata/internal/input"
	"github.com/MurdeRM3L0DY/strata/internal/layout"
	"github.com/MurdeRM3L0DY/strata/internal/logger"
	"github.com/MurdeRM3L0DY/strata/internal/proc"
	"github.com/MurdeRM3L0DY/strata/internal/workspace"
)

// InputSettings is the part of the input configuration scripts may change at
// runtime through input.setup.
type InputSettings struct {
	RepeatRate  int
	RepeatDelay int
	Xkb         config.Xkb
}

// Compositor is the single source of truth the event loop owns.
type Compositor struct {
	Workspaces *workspace.Workspaces
	Mods       input.Mods
	Keybinds   *input.Registry
	Proc       *proc.State
	Input      InputSettings

	pointer layout.Point

	quitFn  func()
	execFn  func(argv []string) (*proc.Child, error)
	spawnFn func(*proc.Child)
	focusFn func(*workspace.Window)
	inputFn func(InputSettings)
}

// New builds compositor state from the startup configuration.
func New(cfg *config.Config) *Compositor {
	gaps := layout.Gaps{Inner: cfg.General.GapsIn, Outer: cfg.General.GapsOut}
	return &Compositor{
		Workspaces: workspace.NewWorkspaces(cfg.General.Workspaces, gaps),
		Keybinds:   input.NewRegistry(),
		Proc:       proc.NewState(),
		Input: InputSettings{
			RepeatRate:  cfg.Input.RepeatRate,
			RepeatDelay: cfg.Input.RepeatDelay,
			Xkb:         cfg.Input.Xkb,
		},
		execFn: proc.Spawn,
	}
}

// OnQuit sets the callback invoked by Quit, normally the event loop's stop
// signal.
func (c *Compositor) OnQuit(fn func()) {
	c.quitFn = fn
}

// Quit asks the event loop to stop.
func (c *Compositor) Quit() {
	if c.quitFn != nil {
		c.quitFn()
	}
}

// OnFocusChange sets the hook told which window should gain input focus.
// Focus delivery itself belongs to the seat/protocol layer.
func (c *Compositor) OnFocusChange(fn func(*workspace.Window)) {
	c.focusFn = fn
}

// OnInputSettings sets the hook notified when scripts change the keyboard
// configuration, so the device layer can apply it.
func (c *Compositor) OnInputSettings(fn func(InputSettings)) {
	c.inputFn = fn
}

// SetExec overrides how children are spawned; tests use this to observe
// spawn requests.
func (c *Compositor) SetExec(fn func(argv []string) (*proc.Child, error)) {
	c.execFn = fn
}

// OnSpawn sets the hook told about every tracked child, so the process reaper
// can adopt it before its exit can be collected.
func (c *Compositor) OnSpawn(fn func(*proc.Child)) {
	c.spawnFn = fn
}

// HandleModifiers feeds one keyboard transition into the modifier state
// machine.
func (c *Compositor) HandleModifiers(ev input.KeyboardEvent) {
	c.Mods.Handle(ev.Mods, ev.Keysym, ev.Pressed)
}

// PatternFor returns the key pattern the given keysym forms with the
// currently held modifiers.
func (c *Compositor) PatternFor(sym input.Keysym) input.KeyPattern {
	return input.KeyPattern{Mods: c.Mods.Flags, Key: sym}
}

// SetPointer updates the tracked pointer location.
func (c *Compositor) SetPointer(p layout.Point) {
	c.pointer = p
}

// Pointer returns the tracked pointer location.
func (c *Compositor) Pointer() layout.Point {
	return c.pointer
}

// WindowUnderPointer hit-tests the current workspace at the pointer.
func (c *Compositor) WindowUnderPointer() (*workspace.Window, bool) {
	w, _, ok := c.Workspaces.Current().WindowUnder(c.pointer)
	return w, ok
}

// MapWindow wraps a newly mapped surface and adds it to the current
// workspace.
func (c *Compositor) MapWindow(s workspace.Surface) *workspace.Window {
	w := workspace.NewWindow(s)
	c.Workspaces.Current().AddWindow(w)
	c.updateFocus()
	return w
}

// UnmapWindow removes the window from whichever workspace owns it.
func (c *Compositor) UnmapWindow(w *workspace.Window) {
	if ws, ok := c.Workspaces.FromWindow(w); ok {
		ws.RemoveWindow(w)
		c.updateFocus()
	}
}

// CloseWindow asks the client under the pointer to close.
func (c *Compositor) CloseWindow() {
	if w, ok := c.WindowUnderPointer(); ok {
		w.Surface().RequestClose()
	}
}

// SwitchToWorkspace activates the workspace and re-resolves focus.
func (c *Compositor) SwitchToWorkspace(id int) error {
	if err := c.Workspaces.Activate(id); err != nil {
		return err
	}
	c.updateFocus()
	return nil
}

// MoveWindowToWorkspace moves the window under the pointer to the target
// workspace. No window under the pointer is a no-op.
func (c *Compositor) MoveWindowToWorkspace(id int) error {
	w, ok := c.WindowUnderPointer()
	if !ok {
		return nil
	}
	return c.Workspaces.MoveWindowToWorkspace(w, id)
}

// FollowWindowMove moves the window under the pointer and switches to the
// target workspace with it.
func (c *Compositor) FollowWindowMove(id int) error {
	if err := c.MoveWindowToWorkspace(id); err != nil {
		return err
	}
	return c.SwitchToWorkspace(id)
}

func (c *Compositor) updateFocus() {
	if c.focusFn == nil {
		return
	}
	if w, ok := c.WindowUnderPointer(); ok {
		c.focusFn(w)
	} else {
		c.focusFn(nil)
	}
}

// Spawn starts argv with piped stdio and tracks it for exit delivery.
func (c *Compositor) Spawn(argv []string) (*proc.Child, error) {
	child, err := c.execFn(argv)
	if err != nil {
		return nil, err
	}
	c.Proc.Track(child)
	if c.spawnFn != nil {
		c.spawnFn(child)
	}
	logger.Debugf("spawned %v pid=%d", argv, child.Pid())
	return child, nil
}

// SpawnShell runs a command line through /bin/sh -c.
func (c *Compositor) SpawnShell(cmdline string) (*proc.Child, error) {
	return c.Spawn([]string{"/bin/sh", "-c", cmdline})
}

// SetRepeatInfo applies new key-repeat settings. Negative values are taken by
// magnitude.
func (c *Compositor) SetRepeatInfo(rate, delay int) {
	if rate < 0 {
		rate = -rate
	}
	if delay < 0 {
		delay = -delay
	}
	c.Input.RepeatRate = rate
	c.Input.RepeatDelay = delay
	c.notifyInput()
}

// UpdateXkb applies a partial xkb update; empty fields keep their previous
// value, mirroring per-field merging.
func (c *Compositor) UpdateXkb(update config.Xkb) {
	if update.Layout != "" {
		c.Input.Xkb.Layout = update.Layout
	}
	if update.Rules != "" {
		c.Input.Xkb.Rules = update.Rules
	}
	if update.Model != "" {
		c.Input.Xkb.Model = update.Model
	}
	if update.Options != "" {
		c.Input.Xkb.Options = update.Options
	}
	if update.Variant != "" {
		c.Input.Xkb.Variant = update.Variant
	}
	c.notifyInput()
}

func (c *Compositor) notifyInput() {
	if c.inputFn != nil {
		c.inputFn(c.Input)
	}
}
