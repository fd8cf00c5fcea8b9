package config_test

import (
	"testing"

	"mrmm/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("MRMM_DATA_DIR", "/data/mrmm")
	t.Setenv("MRMM_GAME_DIR", "/games/MarvelRivals")
	t.Setenv("MRMM_LOG_LEVEL", "debug")

	e, err := config.ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "/data/mrmm", e.DataDir)
	assert.Equal(t, "/games/MarvelRivals", e.GameDir)
	assert.Equal(t, "debug", e.LogLevel)
	assert.Empty(t, e.ConfigDir)
}
