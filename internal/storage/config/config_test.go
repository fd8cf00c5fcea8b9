package config_test

import (
	"path/filepath"
	"testing"

	"mrmm/internal/storage/config"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultValues(t *testing.T) {
	cfg, err := config.Load(afero.NewOsFs(), t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.GameDir)
	assert.False(t, cfg.DarkTheme)
	assert.Empty(t, cfg.CurrentProfile)
	assert.Equal(t, "vim", cfg.Keybindings)
}

func TestLoadConfig_FromFile(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()

	content := `
game_dir: /games/MarvelRivals
dark_theme: true
current_profile: Ranked
keybindings: standard
`
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := config.Load(fs, dir)
	require.NoError(t, err)

	assert.Equal(t, "/games/MarvelRivals", cfg.GameDir)
	assert.True(t, cfg.DarkTheme)
	assert.Equal(t, "Ranked", cfg.CurrentProfile)
	assert.Equal(t, "standard", cfg.Keybindings)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("game_dir: [unclosed"), 0644))

	_, err := config.Load(fs, "/cfg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg := &config.Config{
		GameDir:        "/games/MarvelRivals",
		DarkTheme:      true,
		CurrentProfile: "Default",
		Keybindings:    "vim",
	}
	require.NoError(t, cfg.Save(fs, "/new/config/dir"))

	data, err := afero.ReadFile(fs, "/new/config/dir/config.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "game_dir: /games/MarvelRivals")
	assert.Contains(t, string(data), "current_profile: Default")

	loaded, err := config.Load(fs, "/new/config/dir")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
