package config_test

import (
	"testing"

	"mrmm/internal/domain"
	"mrmm/internal/storage/config"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteManifest_Format(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/profiles/P", 0755))

	require.NoError(t, config.WriteManifest(fs, "/profiles/P", []string{"a.pak", "b.pak"}))

	data, err := afero.ReadFile(fs, "/profiles/P/profile.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"mods": ["a.pak", "b.pak"]}`, string(data))
	assert.Contains(t, string(data), "\n    \"mods\"")
}

func TestWriteManifest_EmptyIsArray(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/profiles/P", 0755))

	require.NoError(t, config.WriteManifest(fs, "/profiles/P", nil))

	data, err := afero.ReadFile(fs, "/profiles/P/profile.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"mods": []}`, string(data))

	mods, err := config.ReadManifest(fs, "/profiles/P")
	require.NoError(t, err)
	assert.NotNil(t, mods)
	assert.Empty(t, mods)
}

func TestWriteManifest_ReplacesPrevious(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/profiles/P", 0755))

	require.NoError(t, config.WriteManifest(fs, "/profiles/P", []string{"a.pak", "b.pak", "c.pak"}))
	require.NoError(t, config.WriteManifest(fs, "/profiles/P", []string{"z.pak"}))

	mods, err := config.ReadManifest(fs, "/profiles/P")
	require.NoError(t, err)
	assert.Equal(t, []string{"z.pak"}, mods)
}

func TestReadManifest(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{"object form", `{"mods": ["a.pak", "b.pak"]}`, []string{"a.pak", "b.pak"}, false},
		{"legacy array form", `["a.pak"]`, []string{"a.pak"}, false},
		{"null mods", `{"mods": null}`, []string{}, false},
		{"garbage", `not json`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/p/profile.json", []byte(tt.content), 0644))

			mods, err := config.ReadManifest(fs, "/p")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mods)
		})
	}
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := config.ReadManifest(afero.NewMemMapFs(), "/nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
