package input

// Keysym is a symbolic key identifier, independent of modifier state. Values
// follow the X11 keysym encoding so script-side names stay compatible with
// every reference the ecosystem already has.
type Keysym uint32

// Modifier keysyms.
const (
	KeyShiftL         Keysym = 0xffe1
	KeyShiftR         Keysym = 0xffe2
	KeyControlL       Keysym = 0xffe3
	KeyControlR       Keysym = 0xffe4
	KeyCapsLock       Keysym = 0xffe5
	KeyShiftLock      Keysym = 0xffe6
	KeyMetaL          Keysym = 0xffe7
	KeyMetaR          Keysym = 0xffe8
	KeyAltL           Keysym = 0xffe9
	KeyAltR           Keysym = 0xffea
	KeySuperL         Keysym = 0xffeb
	KeySuperR         Keysym = 0xffec
	KeyHyperL         Keysym = 0xffed
	KeyHyperR         Keysym = 0xffee
	KeyISOLevel3Shift Keysym = 0xfe03
	KeyISOLevel5Shift Keysym = 0xfe11
	KeyNumLock        Keysym = 0xff7f
)

// Common non-modifier keysyms.
const (
	KeyReturn    Keysym = 0xff0d
	KeyEscape    Keysym = 0xff1b
	KeyTab       Keysym = 0xff09
	KeyBackSpace Keysym = 0xff08
	KeySpace     Keysym = 0x0020
	KeyDelete    Keysym = 0xffff
	KeyHome      Keysym = 0xff50
	KeyEnd       Keysym = 0xff57
	KeyPageUp    Keysym = 0xff55
	KeyPageDown  Keysym = 0xff56
	KeyLeft      Keysym = 0xff51
	KeyUp        Keysym = 0xff52
	KeyRight     Keysym = 0xff53
	KeyDown      Keysym = 0xff54
	KeyPrint     Keysym = 0xff61
	KeyF1        Keysym = 0xffbe
)

// KeysymNone marks "no key"; it never matches a registered pattern.
const KeysymNone Keysym = 0

var keysymNames = map[string]Keysym{
	"Return":           KeyReturn,
	"Escape":           KeyEscape,
	"Tab":              KeyTab,
	"BackSpace":        KeyBackSpace,
	"space":            KeySpace,
	"Delete":           KeyDelete,
	"Home":             KeyHome,
	"End":              KeyEnd,
	"Page_Up":          KeyPageUp,
	"Page_Down":        KeyPageDown,
	"Left":             KeyLeft,
	"Up":               KeyUp,
	"Right":            KeyRight,
	"Down":             KeyDown,
	"Print":            KeyPrint,
	"Shift_L":          KeyShiftL,
	"Shift_R":          KeyShiftR,
	"Control_L":        KeyControlL,
	"Control_R":        KeyControlR,
	"Caps_Lock":        KeyCapsLock,
	"Meta_L":           KeyMetaL,
	"Meta_R":           KeyMetaR,
	"Alt_L":            KeyAltL,
	"Alt_R":            KeyAltR,
	"Super_L":          KeySuperL,
	"Super_R":          KeySuperR,
	"Hyper_L":          KeyHyperL,
	"Hyper_R":          KeyHyperR,
	"ISO_Level3_Shift": KeyISOLevel3Shift,
	"ISO_Level5_Shift": KeyISOLevel5Shift,
	"Num_Lock":         KeyNumLock,
}

var keysymLabels map[Keysym]string

func init() {
	// Latin-1 printable keysyms are their codepoints; function keys are a
	// contiguous block from F1.
	for c := rune('0'); c <= '9'; c++ {
		keysymNames[string(c)] = Keysym(c)
	}
	for c := rune('a'); c <= 'z'; c++ {
		keysymNames[string(c)] = Keysym(c)
	}
	for c := rune('A'); c <= 'Z'; c++ {
		keysymNames[string(c)] = Keysym(c)
	}
	labels := [12]string{"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12"}
	for i, name := range labels {
		keysymNames[name] = KeyF1 + Keysym(i)
	}

	keysymLabels = make(map[Keysym]string, len(keysymNames))
	for name, sym := range keysymNames {
		keysymLabels[sym] = name
	}
}

// KeysymFromName resolves a keysym by its X11 name. As a convenience any
// single printable ASCII character resolves to its Latin-1 keysym even when
// not present in the table. Unknown names yield KeysymNone.
func KeysymFromName(name string) (Keysym, bool) {
	if sym, ok := keysymNames[name]; ok {
		return sym, true
	}
	if len(name) == 1 && name[0] >= 0x20 && name[0] < 0x7f {
		return Keysym(name[0]), true
	}
	return KeysymNone, false
}

// KeysymNames returns a copy of the name table, for building script-side
// constant tables.
func KeysymNames() map[string]Keysym {
	out := make(map[string]Keysym, len(keysymNames))
	for name, sym := range keysymNames {
		out[name] = sym
	}
	return out
}

// Name returns the X11 name of a keysym, or "" if it is not in the table.
func (k Keysym) Name() string {
	return keysymLabels[k]
}

// IsModifier reports whether the keysym maps to a tracked chord modifier.
func (k Keysym) IsModifier() bool {
	return modifierBit(k) != 0
}
