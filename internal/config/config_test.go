package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		cfg = nil
		configPathOverride = ""
	})
}

func TestInitDefaults(t *testing.T) {
	resetViper(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, Init())
	c := Get()
	assert.Equal(t, 5, c.General.Workspaces)
	assert.Equal(t, 25, c.Input.RepeatRate)
	assert.Equal(t, 600, c.Input.RepeatDelay)
	assert.True(t, c.Logging.FileLogging)
	assert.Empty(t, c.Autostart)
}

func TestInitReadsFile(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "strata.toml")
	body := `
autostart = [["waybar"], ["swaybg", "-i", "wall.png"]]

[general]
workspaces = 9
gaps_in = 4
gaps_out = 12

[input]
repeat_rate = 50

[input.xkb]
layout = "it"
options = "caps:swapescape"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	SetConfigPath(path)

	require.NoError(t, Init())
	c := Get()
	assert.Equal(t, 9, c.General.Workspaces)
	assert.Equal(t, 4, c.General.GapsIn)
	assert.Equal(t, 12, c.General.GapsOut)
	assert.Equal(t, 50, c.Input.RepeatRate)
	assert.Equal(t, 600, c.Input.RepeatDelay, "unset fields keep defaults")
	assert.Equal(t, "it", c.Input.Xkb.Layout)
	assert.Equal(t, "caps:swapescape", c.Input.Xkb.Options)
	assert.Equal(t, [][]string{{"waybar"}, {"swaybg", "-i", "wall.png"}}, c.Autostart)
}

func TestInitClampsWorkspaceCount(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "strata.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general]\nworkspaces = 0\n"), 0o644))
	SetConfigPath(path)

	require.NoError(t, Init())
	assert.Equal(t, 1, Get().General.Workspaces)
}

func TestGetBeforeInitReturnsDefaults(t *testing.T) {
	resetViper(t)
	cfg = nil
	assert.Equal(t, &DefaultConfig, Get())
}
