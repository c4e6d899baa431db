// Package defaults carries the built-in Lua bootstrap used when no user
// init script exists.
package defaults

import _ "embed"

//go:embed init.lua
var InitLua string

// Script returns the embedded bootstrap chunk.
func Script() string {
	return InitLua
}
