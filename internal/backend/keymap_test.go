package backend

import (
	"testing"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/MurdeRM3L0DY/strata/internal/input"
)

func TestKeysymFor(t *testing.T) {
	tests := []struct {
		name string
		code uint16
		want input.Keysym
	}{
		{"letter a", evdev.KEY_A, input.Keysym('a')},
		{"letter q", evdev.KEY_Q, input.Keysym('q')},
		{"letter m", evdev.KEY_M, input.Keysym('m')},
		{"digit 1", evdev.KEY_1, input.Keysym('1')},
		{"digit 0", evdev.KEY_0, input.Keysym('0')},
		{"return", evdev.KEY_ENTER, input.KeyReturn},
		{"escape", evdev.KEY_ESC, input.KeyEscape},
		{"left shift", evdev.KEY_LEFTSHIFT, input.KeyShiftL},
		{"right alt", evdev.KEY_RIGHTALT, input.KeyAltR},
		{"super", evdev.KEY_LEFTMETA, input.KeySuperL},
		{"F1", evdev.KEY_F1, input.KeyF1},
		{"F11", evdev.KEY_F11, input.KeyF1 + 10},
		{"F12", evdev.KEY_F12, input.KeyF1 + 11},
		{"unmapped", evdev.KEY_KATAKANA, input.KeysymNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeysymFor(tt.code))
		})
	}
}

func TestStateTrackerChordModifiers(t *testing.T) {
	var tr stateTracker

	st := tr.update(input.KeyControlL, true)
	assert.Equal(t, uint32(maskControl), st.Depressed)
	assert.Zero(t, st.Locked)

	st = tr.update(input.KeyAltL, true)
	assert.Equal(t, uint32(maskControl|maskMod1), st.Depressed)

	st = tr.update(input.KeyControlL, false)
	assert.Equal(t, uint32(maskMod1), st.Depressed)

	st = tr.update(input.KeyAltL, false)
	assert.Zero(t, st.Depressed)
}

func TestStateTrackerLockToggle(t *testing.T) {
	var tr stateTracker

	st := tr.update(input.KeyCapsLock, true)
	assert.Equal(t, uint32(maskLock), st.Depressed)
	assert.Equal(t, uint32(maskLock), st.Locked)

	st = tr.update(input.KeyCapsLock, false)
	assert.Zero(t, st.Depressed)
	assert.Equal(t, uint32(maskLock), st.Locked, "lock persists past release")

	st = tr.update(input.KeyCapsLock, true)
	assert.Zero(t, st.Locked, "second press unlocks")
	tr.update(input.KeyCapsLock, false)
}

func TestStateTrackerNonModifierInert(t *testing.T) {
	var tr stateTracker
	st := tr.update(input.KeyReturn, true)
	assert.Zero(t, st.Depressed)
	assert.Zero(t, st.Locked)
}

// The synthesized state must drive the modifier machine the same way a real
// keyboard serialization would: chord keys toggle held bits, lock keys do not.
func TestStateTrackerDrivesModifierMachine(t *testing.T) {
	var tr stateTracker
	var m input.Mods

	m.Handle(tr.update(input.KeyControlL, true), input.KeyControlL, true)
	assert.Equal(t, input.ModControlL, m.Flags)

	m.Handle(tr.update(input.KeyCapsLock, true), input.KeyCapsLock, true)
	assert.Equal(t, input.ModControlL, m.Flags, "caps lock must not join the chord")

	m.Handle(tr.update(input.KeyCapsLock, false), input.KeyCapsLock, false)
	m.Handle(tr.update(input.KeyControlL, false), input.KeyControlL, false)
	assert.Zero(t, m.Flags)
}
