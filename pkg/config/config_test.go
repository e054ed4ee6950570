package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *ConfigManager {
	t.Helper()
	cm, err := NewConfigManagerAt(filepath.Join(t.TempDir(), "timescipher", "config.json"))
	require.NoError(t, err)
	return cm
}

func TestNewConfigManagerWritesDefaults(t *testing.T) {
	cm := newTestManager(t)

	_, err := os.Stat(cm.Path())
	require.NoError(t, err)

	cfg := cm.GetConfig()
	assert.Equal(t, 12, cfg.Defaults.GridSize)
	assert.Equal(t, int32(1), cfg.Defaults.Seed)
	assert.Equal(t, "encode", cfg.Session.Mode)
}

func TestSaveAndReload(t *testing.T) {
	cm := newTestManager(t)

	cfg := cm.GetConfig()
	cfg.Defaults.GridSize = 16
	cfg.Defaults.Seed = -42
	cfg.Session.Input = "  Hello,\nWorld  "
	require.NoError(t, cm.SaveConfig())

	reloaded, err := NewConfigManagerAt(cm.Path())
	require.NoError(t, err)
	assert.Equal(t, 16, reloaded.GetConfig().Defaults.GridSize)
	assert.Equal(t, int32(-42), reloaded.GetConfig().Defaults.Seed)
	assert.Equal(t, "  Hello,\nWorld  ", reloaded.GetConfig().Session.Input)
}

func TestLoadConfigKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"defaults":{"grid_size":9}}`), 0600))

	cm, err := NewConfigManagerAt(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cm.GetConfig().Defaults.GridSize)
	assert.Equal(t, int32(1), cm.GetConfig().Defaults.Seed)
	assert.True(t, cm.GetConfig().UI.UseColor)
}

func TestCorruptConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	_, err := NewConfigManagerAt(path)
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	cm := newTestManager(t)
	cm.GetConfig().Defaults.Seed = 99
	require.NoError(t, cm.Reset())
	assert.Equal(t, int32(1), cm.GetConfig().Defaults.Seed)
}

func TestEffectiveAppliesEnvironment(t *testing.T) {
	cm := newTestManager(t)

	t.Setenv("TIMESCIPHER_GRID_SIZE", "18")
	t.Setenv("TIMESCIPHER_SEED", "-3")
	t.Setenv("NO_COLOR", "1")

	effective, err := cm.Effective()
	require.NoError(t, err)
	assert.Equal(t, 18, effective.Defaults.GridSize)
	assert.Equal(t, int32(-3), effective.Defaults.Seed)
	assert.False(t, effective.UI.UseColor)

	// The stored configuration is untouched.
	assert.Equal(t, 12, cm.GetConfig().Defaults.GridSize)
}

func TestEffectiveRejectsBadEnvironment(t *testing.T) {
	cm := newTestManager(t)
	t.Setenv("TIMESCIPHER_GRID_SIZE", "twelve")

	_, err := cm.Effective()
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	cm := newTestManager(t)

	require.NoError(t, cm.AddPreset(&Preset{Name: "class-4b", GridSize: 10, Seed: 7}))
	require.NoError(t, cm.AddPreset(&Preset{Name: "class-4a", GridSize: 9, Seed: 3}))
	assert.Error(t, cm.AddPreset(&Preset{}))

	presets := cm.ListPresets()
	require.Len(t, presets, 2)
	assert.Equal(t, "class-4a", presets[0].Name)

	require.NoError(t, cm.ApplyPreset("class-4b"))
	assert.Equal(t, 10, cm.GetConfig().Defaults.GridSize)
	assert.Equal(t, int32(7), cm.GetConfig().Defaults.Seed)

	reloaded, err := NewConfigManagerAt(cm.Path())
	require.NoError(t, err)
	_, err = reloaded.GetPreset("class-4a")
	assert.NoError(t, err)

	require.NoError(t, reloaded.DeletePreset("class-4a"))
	assert.Error(t, reloaded.DeletePreset("class-4a"))
	_, err = reloaded.GetPreset("class-4a")
	assert.Error(t, err)
}
