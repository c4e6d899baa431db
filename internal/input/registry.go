package input

import lua "github.com/yuin/gopher-lua"

// Registry maps key patterns to stashed script callbacks. Registration is
// insert-or-replace; the replaced function is dropped silently and becomes
// unreachable for the interpreter's collector. Lookup never mutates.
type Registry struct {
	binds map[KeyPattern]*lua.LFunction
}

// NewRegistry returns an empty keybind registry.
func NewRegistry() *Registry {
	return &Registry{binds: make(map[KeyPattern]*lua.LFunction)}
}

// Register binds fn to the pattern, replacing any prior binding.
func (r *Registry) Register(p KeyPattern, fn *lua.LFunction) {
	r.binds[p] = fn
}

// Lookup returns the callback bound to the pattern, if any.
func (r *Registry) Lookup(p KeyPattern) (*lua.LFunction, bool) {
	fn, ok := r.binds[p]
	return fn, ok
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int {
	return len(r.binds)
}
