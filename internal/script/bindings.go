package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/MurdeRM3L0DY/strata/internal/compositor"
	"github.com/MurdeRM3L0DY/strata/internal/config"
	"github.com/MurdeRM3L0DY/strata/internal/input"
	"github.com/MurdeRM3L0DY/strata/internal/proc"
)

const childTypeName = "strata.child"

// register installs the strata global:
//
//	strata.input.keybind(mods, key, cb)
//	strata.input.setup{repeat_info = {...}, xkb_config = {...}}
//	strata.input.Key / strata.input.Mod constant tables
//	strata.proc.spawn(cmd) -> child
//	strata.window.close / switch_to_workspace / move_to_workspace /
//	  follow_to_workspace
//	strata.spawn(cmd) -> child
//	strata.quit()
func (r *Runtime) register() {
	L := r.L
	r.registerChildType()

	strata := L.NewTable()
	L.SetGlobal("strata", strata)

	in := L.NewTable()
	L.SetField(strata, "input", in)
	L.SetField(in, "keybind", L.NewFunction(r.luaKeybind))
	L.SetField(in, "setup", L.NewFunction(r.luaInputSetup))
	L.SetField(in, "Key", constTable(L, input.KeysymNames()))
	L.SetField(in, "Mod", constTable(L, input.ModifierNames()))

	pr := L.NewTable()
	L.SetField(strata, "proc", pr)
	L.SetField(pr, "spawn", L.NewFunction(r.luaSpawn))

	win := L.NewTable()
	L.SetField(strata, "window", win)
	L.SetField(win, "close", L.NewFunction(r.luaWindowClose))
	L.SetField(win, "switch_to_workspace", L.NewFunction(r.luaSwitchToWorkspace))
	L.SetField(win, "move_to_workspace", L.NewFunction(r.luaMoveToWorkspace))
	L.SetField(win, "follow_to_workspace", L.NewFunction(r.luaFollowToWorkspace))

	L.SetField(strata, "spawn", L.NewFunction(r.luaSpawn))
	L.SetField(strata, "quit", L.NewFunction(r.luaQuit))
}

func constTable[T ~uint16 | ~uint32](L *lua.LState, names map[string]T) *lua.LTable {
	t := L.NewTable()
	for name, v := range names {
		L.SetField(t, name, lua.LNumber(v))
	}
	return t
}

// mustBorrow resolves the compositor loan or raises into Lua.
func (r *Runtime) mustBorrow(L *lua.LState) *compositor.Compositor {
	c, err := r.borrow()
	if err != nil {
		L.RaiseError("%v", err)
	}
	return c
}

func (r *Runtime) luaKeybind(L *lua.LState) int {
	c := r.mustBorrow(L)

	modsTbl := L.CheckTable(1)
	var mods input.Modifier
	for i := 1; i <= modsTbl.Len(); i++ {
		switch v := modsTbl.RawGetInt(i).(type) {
		case lua.LString:
			m, ok := input.ModifierFromName(string(v))
			if !ok {
				L.ArgError(1, fmt.Sprintf("unknown modifier %q", string(v)))
			}
			mods |= m
		case lua.LNumber:
			mods |= input.Modifier(v)
		default:
			L.ArgError(1, "modifier name or strata.input.Mod constant expected")
		}
	}

	var key input.Keysym
	switch v := L.Get(2).(type) {
	case lua.LString:
		sym, ok := input.KeysymFromName(string(v))
		if !ok {
			L.ArgError(2, fmt.Sprintf("unknown key %q", string(v)))
		}
		key = sym
	case lua.LNumber:
		key = input.Keysym(v)
	default:
		L.ArgError(2, "key name or strata.input.Key constant expected")
	}

	cb := L.CheckFunction(3)
	c.Keybinds.Register(input.KeyPattern{Mods: mods, Key: key}, cb)
	return 0
}

func (r *Runtime) luaInputSetup(L *lua.LState) int {
	c := r.mustBorrow(L)
	opts := L.CheckTable(1)

	if v := opts.RawGetString("repeat_info"); v != lua.LNil {
		tbl, ok := v.(*lua.LTable)
		if !ok {
			L.RaiseError("input.setup: repeat_info: table expected, got %s", v.Type())
		}
		// validate both fields before touching state
		rate := intField(L, tbl, "repeat_info", "rate", c.Input.RepeatRate)
		delay := intField(L, tbl, "repeat_info", "delay", c.Input.RepeatDelay)
		c.SetRepeatInfo(rate, delay)
	}

	if v := opts.RawGetString("xkb_config"); v != lua.LNil {
		tbl, ok := v.(*lua.LTable)
		if !ok {
			L.RaiseError("input.setup: xkb_config: table expected, got %s", v.Type())
		}
		update := config.Xkb{
			Layout:  strField(L, tbl, "xkb_config", "layout"),
			Rules:   strField(L, tbl, "xkb_config", "rules"),
			Model:   strField(L, tbl, "xkb_config", "model"),
			Options: strField(L, tbl, "xkb_config", "options"),
			Variant: strField(L, tbl, "xkb_config", "variant"),
		}
		c.UpdateXkb(update)
	}
	return 0
}

func intField(L *lua.LState, tbl *lua.LTable, path, name string, def int) int {
	v := tbl.RawGetString(name)
	if v == lua.LNil {
		return def
	}
	n, ok := v.(lua.LNumber)
	if !ok {
		L.RaiseError("input.setup: %s.%s: number expected, got %s", path, name, v.Type())
	}
	return int(n)
}

func strField(L *lua.LState, tbl *lua.LTable, path, name string) string {
	v := tbl.RawGetString(name)
	if v == lua.LNil {
		return ""
	}
	s, ok := v.(lua.LString)
	if !ok {
		L.RaiseError("input.setup: %s.%s: string expected, got %s", path, name, v.Type())
	}
	return string(s)
}

func (r *Runtime) luaSpawn(L *lua.LState) int {
	c := r.mustBorrow(L)

	var (
		child *proc.Child
		err   error
	)
	switch v := L.Get(1).(type) {
	case lua.LString:
		child, err = c.SpawnShell(string(v))
	case *lua.LTable:
		argv := argvFromTable(L, v)
		child, err = c.Spawn(argv)
	default:
		L.ArgError(1, "command string or table of strings expected")
	}
	if err != nil {
		L.RaiseError("spawn: %v", err)
	}

	ud := L.NewUserData()
	ud.Value = child
	L.SetMetatable(ud, L.GetTypeMetatable(childTypeName))
	L.Push(ud)
	return 1
}

func argvFromTable(L *lua.LState, tbl *lua.LTable) []string {
	n := tbl.Len()
	if n == 0 {
		L.ArgError(1, "empty command")
	}
	argv := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			L.ArgError(1, fmt.Sprintf("command element %d: string expected", i))
		}
		argv = append(argv, string(s))
	}
	return argv
}

func (r *Runtime) luaWindowClose(L *lua.LState) int {
	r.mustBorrow(L).CloseWindow()
	return 0
}

func (r *Runtime) luaSwitchToWorkspace(L *lua.LState) int {
	c := r.mustBorrow(L)
	if err := c.SwitchToWorkspace(L.CheckInt(1)); err != nil {
		L.RaiseError("switch_to_workspace: %v", err)
	}
	return 0
}

func (r *Runtime) luaMoveToWorkspace(L *lua.LState) int {
	c := r.mustBorrow(L)
	if err := c.MoveWindowToWorkspace(L.CheckInt(1)); err != nil {
		L.RaiseError("move_to_workspace: %v", err)
	}
	return 0
}

func (r *Runtime) luaFollowToWorkspace(L *lua.LState) int {
	c := r.mustBorrow(L)
	if err := c.FollowWindowMove(L.CheckInt(1)); err != nil {
		L.RaiseError("follow_to_workspace: %v", err)
	}
	return 0
}

func (r *Runtime) luaQuit(L *lua.LState) int {
	r.mustBorrow(L).Quit()
	return 0
}
