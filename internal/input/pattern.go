package input

import "fmt"

// KeyPattern is an immutable (modifier set, keysym) pair used as the keybind
// lookup key. Lookups are exact-match: a pattern bound with Control_L only
// fires when Control_L is the entire held set.
type KeyPattern struct {
	Mods Modifier
	Key  Keysym
}

func (p KeyPattern) String() string {
	name := p.Key.Name()
	if name == "" {
		name = fmt.Sprintf("keysym:%#x", uint32(p.Key))
	}
	if p.Mods == 0 {
		return name
	}
	return p.Mods.String() + "+" + name
}

// KeyboardEvent is one raw keyboard transition delivered by an input backend.
type KeyboardEvent struct {
	Keysym  Keysym
	Keycode uint32
	Pressed bool
	// Mods is the raw modifier serialization after this transition.
	Mods ModifierState
	// TimeMs is the backend event timestamp in milliseconds.
	TimeMs uint32
}
