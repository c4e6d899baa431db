package backend

import (
	evdev "github.com/gvalkov/golang-evdev"

	"github.com/MurdeRM3L0DY/strata/internal/input"
)

// keycodeToKeysym maps Linux input keycodes to keysyms for a plain US layout.
// Shift-level symbols are not resolved here; keybinds match on the base
// keysym plus the modifier set, so the base level is all the registry needs.
var keycodeToKeysym = map[uint16]input.Keysym{
	evdev.KEY_LEFTSHIFT:  input.KeyShiftL,
	evdev.KEY_RIGHTSHIFT: input.KeyShiftR,
	evdev.KEY_LEFTCTRL:   input.KeyControlL,
	evdev.KEY_RIGHTCTRL:  input.KeyControlR,
	evdev.KEY_LEFTALT:    input.KeyAltL,
	evdev.KEY_RIGHTALT:   input.KeyAltR,
	evdev.KEY_LEFTMETA:   input.KeySuperL,
	evdev.KEY_RIGHTMETA:  input.KeySuperR,
	evdev.KEY_CAPSLOCK:   input.KeyCapsLock,
	evdev.KEY_NUMLOCK:    input.KeyNumLock,

	evdev.KEY_ENTER:     input.KeyReturn,
	evdev.KEY_ESC:       input.KeyEscape,
	evdev.KEY_TAB:       input.KeyTab,
	evdev.KEY_BACKSPACE: input.KeyBackSpace,
	evdev.KEY_SPACE:     input.KeySpace,
	evdev.KEY_DELETE:    input.KeyDelete,
	evdev.KEY_HOME:      input.KeyHome,
	evdev.KEY_END:       input.KeyEnd,
	evdev.KEY_PAGEUP:    input.KeyPageUp,
	evdev.KEY_PAGEDOWN:  input.KeyPageDown,
	evdev.KEY_LEFT:      input.KeyLeft,
	evdev.KEY_UP:        input.KeyUp,
	evdev.KEY_RIGHT:     input.KeyRight,
	evdev.KEY_DOWN:      input.KeyDown,
	evdev.KEY_SYSRQ:     input.KeyPrint,
}

func init() {
	// QWERTY letter rows
	rows := []struct {
		first uint16
		keys  string
	}{
		{evdev.KEY_Q, "qwertyuiop"},
		{evdev.KEY_A, "asdfghjkl"},
		{evdev.KEY_Z, "zxcvbnm"},
	}
	for _, row := range rows {
		for i, c := range row.keys {
			keycodeToKeysym[row.first+uint16(i)] = input.Keysym(c)
		}
	}

	// digit row: KEY_1..KEY_9 then KEY_0
	for i := uint16(0); i < 9; i++ {
		keycodeToKeysym[evdev.KEY_1+i] = input.Keysym('1' + i)
	}
	keycodeToKeysym[evdev.KEY_0] = input.Keysym('0')

	// F1-F10 are contiguous, F11/F12 are not
	for i := uint16(0); i < 10; i++ {
		keycodeToKeysym[evdev.KEY_F1+i] = input.KeyF1 + input.Keysym(i)
	}
	keycodeToKeysym[evdev.KEY_F11] = input.KeyF1 + 10
	keycodeToKeysym[evdev.KEY_F12] = input.KeyF1 + 11
}

// KeysymFor translates a Linux keycode. Unmapped keycodes yield KeysymNone;
// they still flow through the event loop so the modifier machine sees every
// transition.
func KeysymFor(code uint16) input.Keysym {
	if sym, ok := keycodeToKeysym[code]; ok {
		return sym
	}
	return input.KeysymNone
}

// Core modifier mask bit positions, matching the X11 core protocol order the
// modifier state machine expects.
const (
	maskShift   = 1 << 0
	maskLock    = 1 << 1
	maskControl = 1 << 2
	maskMod1    = 1 << 3 // Alt
	maskMod2    = 1 << 4 // Num Lock
	maskMod4    = 1 << 6 // Super
)

func coreMask(sym input.Keysym) (mask uint32, lock bool) {
	switch sym {
	case input.KeyShiftL, input.KeyShiftR:
		return maskShift, false
	case input.KeyControlL, input.KeyControlR:
		return maskControl, false
	case input.KeyAltL, input.KeyAltR, input.KeyMetaL, input.KeyMetaR:
		return maskMod1, false
	case input.KeySuperL, input.KeySuperR:
		return maskMod4, false
	case input.KeyCapsLock:
		return maskLock, true
	case input.KeyNumLock:
		return maskMod2, true
	default:
		return 0, false
	}
}

// stateTracker synthesizes the raw modifier serialization a keyboard would
// report, from the stream of key transitions alone.
type stateTracker struct {
	depressed uint32
	locked    uint32
}

func (t *stateTracker) update(sym input.Keysym, pressed bool) input.ModifierState {
	mask, lock := coreMask(sym)
	if mask != 0 {
		if pressed {
			t.depressed |= mask
			if lock {
				t.locked ^= mask
			}
		} else {
			t.depressed &^= mask
		}
	}
	return input.ModifierState{Depressed: t.depressed, Locked: t.locked}
}
