package input

import (
	"sort"
	"strings"
)

// Modifier is a bitset over the tracked physical modifier keys. A bit is set
// iff the corresponding key is currently held, derived from press/release
// transitions rather than the keyboard's own lock state.
type Modifier uint16

const (
	ModShiftL Modifier = 1 << iota
	ModShiftR
	ModControlL
	ModControlR
	ModAltL
	ModAltR
	ModSuperL
	ModSuperR
	ModISOLevel3Shift
	ModISOLevel5Shift
	ModHyperL
	ModHyperR
)

var modifierNames = map[string]Modifier{
	"Shift_L":          ModShiftL,
	"Shift_R":          ModShiftR,
	"Control_L":        ModControlL,
	"Control_R":        ModControlR,
	"Alt_L":            ModAltL,
	"Alt_R":            ModAltR,
	"Super_L":          ModSuperL,
	"Super_R":          ModSuperR,
	"ISO_Level3_Shift": ModISOLevel3Shift,
	"ISO_Level5_Shift": ModISOLevel5Shift,
	"Hyper_L":          ModHyperL,
	"Hyper_R":          ModHyperR,
}

// ModifierFromName resolves a modifier by its keysym-style name (for example
// "Control_L"). The second result is false for unknown names.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNames[name]
	return m, ok
}

// ModifierNames returns a copy of the name table, for building script-side
// constant tables.
func ModifierNames() map[string]Modifier {
	out := make(map[string]Modifier, len(modifierNames))
	for name, m := range modifierNames {
		out[name] = m
	}
	return out
}

func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for name, bit := range modifierNames {
		if m&bit != 0 {
			parts = append(parts, name)
		}
	}
	// map iteration order is random; callers only use this for logging
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// modifierBit maps a keysym to its tracked modifier bit. Non-modifier keysyms
// map to the empty bit, which makes every toggle below a no-op.
func modifierBit(sym Keysym) Modifier {
	switch sym {
	case KeyMetaL, KeyAltL:
		return ModAltL
	case KeyMetaR, KeyAltR:
		return ModAltR
	case KeyShiftL:
		return ModShiftL
	case KeyShiftR:
		return ModShiftR
	case KeyControlL:
		return ModControlL
	case KeyControlR:
		return ModControlR
	case KeySuperL:
		return ModSuperL
	case KeySuperR:
		return ModSuperR
	case KeyISOLevel3Shift:
		return ModISOLevel3Shift
	case KeyISOLevel5Shift:
		return ModISOLevel5Shift
	case KeyHyperL:
		return ModHyperL
	case KeyHyperR:
		return ModHyperR
	default:
		return 0
	}
}

// ModifierState is the raw modifier serialization reported by the keyboard
// after a key transition. Depressed counts chord modifiers physically held,
// Locked counts lock modifiers (Caps Lock, Num Lock) currently latched on.
type ModifierState struct {
	Depressed uint32
	Latched   uint32
	Locked    uint32
	Group     uint32
}

// Mods tracks the held chord modifiers plus the last raw state they were
// derived from.
type Mods struct {
	Flags Modifier
	State ModifierState
}

// Handle feeds one keyboard transition into the modifier state machine.
//
// Toggling (XOR) rather than set/clear tolerates keyboards that fire repeated
// press events for a held modifier, and the depressed/locked comparison keeps
// lock modifiers out of the chord set: a lock key raises Locked together with
// Depressed, a chord modifier raises Depressed alone.
func (m *Mods) Handle(state ModifierState, sym Keysym, pressed bool) {
	old := m.State
	bit := modifierBit(sym)

	if pressed {
		depressed := state == old || state.Depressed > old.Depressed
		isModifier := state.Depressed > state.Locked-old.Locked
		if depressed && isModifier {
			m.Flags ^= bit
		}
	} else {
		m.Flags ^= bit
	}

	m.State = state
}
