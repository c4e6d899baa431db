// Package script embeds the Lua runtime and bridges it to the compositor.
//
// The bridge enforces a loan discipline: scripts can only reach compositor
// state while the event loop has opened a scope with Scope. Outside a scope
// every strata.* function that touches state raises an error instead of
// aliasing it. One executor slot is reused for every callback invocation;
// interpreter errors are caught at the call boundary and the slot stays
// usable afterwards.
package script

import (
	"errors"
	"fmt"
	"io"

	lua "github.com/yuin/gopher-lua"

	"github.com/MurdeRM3L0DY/strata/internal/compositor"
	"github.com/MurdeRM3L0DY/strata/internal/input"
	"github.com/MurdeRM3L0DY/strata/internal/logger"
)

var (
	// ErrScopeActive is returned when a second compositor scope is opened
	// while one is still running.
	ErrScopeActive = errors.New("script: compositor scope already active")

	// ErrInertHandle is raised into Lua when a script touches compositor
	// state outside an active scope.
	ErrInertHandle = errors.New("script: compositor handle used outside an active scope")
)

// Host is implemented by the event loop. WatchLines arranges for fn to be
// invoked once per newline-terminated line read from r, back on the loop
// thread inside a compositor scope.
type Host interface {
	WatchLines(r io.Reader, fn *lua.LFunction)
}

// Runtime owns the interpreter, the executor slot, and the scope flag.
type Runtime struct {
	L    *lua.LState
	comp *compositor.Compositor
	host Host

	inScope  bool
	execFn   *lua.LFunction
	execArgs []lua.LValue
}

// New creates the interpreter and installs the strata global.
func New(comp *compositor.Compositor, host Host) *Runtime {
	r := &Runtime{
		L:    lua.NewState(),
		comp: comp,
		host: host,
	}
	r.register()
	return r
}

// Close shuts the interpreter down.
func (r *Runtime) Close() {
	r.L.Close()
}

// Scope loans the compositor to body. While body runs, strata.* functions may
// mutate compositor state; the loan ends when body returns. Opening a scope
// inside a scope returns ErrScopeActive.
func (r *Runtime) Scope(body func(*compositor.Compositor) error) error {
	if r.inScope {
		return ErrScopeActive
	}
	r.inScope = true
	defer func() { r.inScope = false }()
	return body(r.comp)
}

// borrow resolves the compositor handle for a binding, failing outside a
// scope.
func (r *Runtime) borrow() (*compositor.Compositor, error) {
	if !r.inScope {
		return nil, ErrInertHandle
	}
	return r.comp, nil
}

// Restart loads a callback and its arguments into the executor slot,
// replacing whatever was there.
func (r *Runtime) Restart(fn *lua.LFunction, args ...lua.LValue) {
	r.execFn = fn
	r.execArgs = args
}

// Execute runs the executor slot to completion under a protected call. The
// slot is cleared first, so an erroring callback never re-runs and the slot
// is immediately reusable.
func (r *Runtime) Execute() error {
	fn, args := r.execFn, r.execArgs
	r.execFn, r.execArgs = nil, nil
	if fn == nil {
		return nil
	}
	if err := r.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunKeybind dispatches the callback registered for pattern, if any, and
// reports whether one ran. Callback errors are logged, never propagated. Call
// inside a scope so the callback may use the strata API.
func (r *Runtime) RunKeybind(pat input.KeyPattern) bool {
	fn, ok := r.comp.Keybinds.Lookup(pat)
	if !ok {
		return false
	}
	r.Restart(fn)
	if err := r.Execute(); err != nil {
		logger.Errorf("keybind %s: %v", pat, err)
	}
	return true
}

// CallExit invokes a process-exit callback with (code, signal).
func (r *Runtime) CallExit(fn *lua.LFunction, code, signal int) {
	r.Restart(fn, lua.LNumber(code), lua.LNumber(signal))
	if err := r.Execute(); err != nil {
		logger.Errorf("exit callback: %v", err)
	}
}

// CallLine invokes a line-read callback with one newline-stripped line.
func (r *Runtime) CallLine(fn *lua.LFunction, line string) {
	r.Restart(fn, lua.LString(line))
	if err := r.Execute(); err != nil {
		logger.Errorf("line callback: %v", err)
	}
}

// RunString executes a chunk, typically the init script. Call inside a scope.
func (r *Runtime) RunString(chunk string) error {
	if err := r.L.DoString(chunk); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile executes a script file. Call inside a scope.
func (r *Runtime) RunFile(path string) error {
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}
