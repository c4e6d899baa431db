package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func compileFn(t *testing.T, L *lua.LState, src string) *lua.LFunction {
	t.Helper()
	fn, err := L.LoadString(src)
	require.NoError(t, err)
	return fn
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	r := NewRegistry()
	p := KeyPattern{Mods: ModControlL | ModAltL, Key: KeyReturn}

	_, ok := r.Lookup(p)
	assert.False(t, ok)

	fn := compileFn(t, L, "return 1")
	r.Register(p, fn)
	got, ok := r.Lookup(p)
	require.True(t, ok)
	assert.Same(t, fn, got)
	assert.Equal(t, 1, r.Len())

	// lookups are exact-match: a superset of held modifiers misses
	_, ok = r.Lookup(KeyPattern{Mods: ModControlL, Key: KeyReturn})
	assert.False(t, ok)
	_, ok = r.Lookup(KeyPattern{Mods: p.Mods | ModShiftL, Key: KeyReturn})
	assert.False(t, ok)
}

func TestRegistryReplaceDiscardsPrior(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	r := NewRegistry()
	p := KeyPattern{Mods: ModSuperL, Key: Keysym('d')}

	first := compileFn(t, L, "return 1")
	second := compileFn(t, L, "return 2")
	r.Register(p, first)
	r.Register(p, second)

	got, ok := r.Lookup(p)
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.NotSame(t, first, got)
	assert.Equal(t, 1, r.Len())
}
