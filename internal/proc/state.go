package proc

import lua "github.com/yuin/gopher-lua"

// State is the per-compositor process bookkeeping: spawned children by pid
// and at most one stashed exit callback per pid. Owned by the compositor and
// only ever touched from the event-loop thread.
type State struct {
	children map[int]*Child
	onExit   map[int]*lua.LFunction
}

// NewState returns empty process state.
func NewState() *State {
	return &State{
		children: make(map[int]*Child),
		onExit:   make(map[int]*lua.LFunction),
	}
}

// Track records a spawned child until its exit is delivered.
func (s *State) Track(c *Child) {
	s.children[c.Pid()] = c
}

// Child returns the tracked child for a pid.
func (s *State) Child(pid int) (*Child, bool) {
	c, ok := s.children[pid]
	return c, ok
}

// OnExit registers the exit callback for a pid, replacing any prior one.
func (s *State) OnExit(pid int, fn *lua.LFunction) {
	s.onExit[pid] = fn
}

// TakeExit removes and returns the record for a reaped pid. The callback may
// be nil when the script never registered one; the child may be nil for exits
// of processes strata did not spawn.
func (s *State) TakeExit(pid int) (*Child, *lua.LFunction) {
	c := s.children[pid]
	fn := s.onExit[pid]
	delete(s.children, pid)
	delete(s.onExit, pid)
	return c, fn
}

// Forget drops all records for a pid, used after an explicit kill.
func (s *State) Forget(pid int) {
	delete(s.children, pid)
	delete(s.onExit, pid)
}

// Tracked returns the number of live child records.
func (s *State) Tracked() int {
	return len(s.children)
}
