package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/MurdeRM3L0DY/strata/internal/proc"
)

// registerChildType installs the metatable backing the handle returned by
// strata.proc.spawn.
func (r *Runtime) registerChildType() {
	mt := r.L.NewTypeMetatable(childTypeName)
	r.L.SetField(mt, "__index", r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"pid":            r.childPid,
		"on_exit":        r.childOnExit,
		"on_line_stdout": r.childOnLineStdout,
		"on_line_stderr": r.childOnLineStderr,
		"wait":           r.childWait,
		"kill":           r.childKill,
		"write":          r.childWrite,
	}))
}

func checkChild(L *lua.LState) *proc.Child {
	ud := L.CheckUserData(1)
	child, ok := ud.Value.(*proc.Child)
	if !ok {
		L.ArgError(1, "child process expected")
	}
	return child
}

func (r *Runtime) childPid(L *lua.LState) int {
	L.Push(lua.LNumber(checkChild(L).Pid()))
	return 1
}

// on_exit stashes cb for invocation with (code, signal) when the reaper
// observes this pid. A second registration replaces the first.
func (r *Runtime) childOnExit(L *lua.LState) int {
	child := checkChild(L)
	cb := L.CheckFunction(2)
	c := r.mustBorrow(L)
	c.Proc.OnExit(child.Pid(), cb)
	return 0
}

func (r *Runtime) childOnLineStdout(L *lua.LState) int {
	child := checkChild(L)
	cb := L.CheckFunction(2)
	if r.host == nil {
		L.RaiseError("on_line_stdout: no line watcher available")
	}
	rd := child.TakeStdout()
	if rd == nil {
		L.RaiseError("on_line_stdout: stdout already claimed")
	}
	r.host.WatchLines(rd, cb)
	return 0
}

func (r *Runtime) childOnLineStderr(L *lua.LState) int {
	child := checkChild(L)
	cb := L.CheckFunction(2)
	if r.host == nil {
		L.RaiseError("on_line_stderr: no line watcher available")
	}
	rd := child.TakeStderr()
	if rd == nil {
		L.RaiseError("on_line_stderr: stderr already claimed")
	}
	r.host.WatchLines(rd, cb)
	return 0
}

// wait blocks the interpreter until the child exits and returns its exit
// code. Scripts that need asynchrony use on_exit instead.
func (r *Runtime) childWait(L *lua.LState) int {
	code, err := checkChild(L).Wait()
	if err != nil {
		L.RaiseError("wait: %v", err)
	}
	L.Push(lua.LNumber(code))
	return 1
}

func (r *Runtime) childKill(L *lua.LState) int {
	if err := checkChild(L).Kill(); err != nil {
		L.RaiseError("kill: %v", err)
	}
	return 0
}

func (r *Runtime) childWrite(L *lua.LState) int {
	child := checkChild(L)
	data := L.CheckString(2)
	if _, err := child.WriteStdin([]byte(data)); err != nil {
		L.RaiseError("write: %v", err)
	}
	return 0
}
