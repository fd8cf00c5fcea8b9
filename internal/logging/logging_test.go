package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mrmm/internal/logging"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_VerbosityLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		closeFn := logging.Setup(logging.Options{Verbosity: tt.verbosity, Console: &bytes.Buffer{}})
		assert.Equal(t, tt.want, zerolog.GlobalLevel())
		require.NoError(t, closeFn())
	}
}

func TestSetup_ExplicitLevelWins(t *testing.T) {
	closeFn := logging.Setup(logging.Options{Verbosity: 3, Level: "error"})
	defer closeFn()
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mrmm.log")
	closeFn := logging.Setup(logging.Options{Verbosity: 1, File: path})

	logger := logging.GetLogger("test")
	logger.Info().Msg("hello from test")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestSetup_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	closeFn := logging.Setup(logging.Options{Verbosity: 0, Console: &buf})
	defer closeFn()

	logger := logging.GetLogger("console")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel(""))
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel("nonsense"))
}
