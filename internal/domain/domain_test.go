package domain_test

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"mrmm/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsModFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"pakchunk99-Mods_P.pak", true},
		{"a.pak", true},
		{".pak", false},
		{"a.PAK", false},
		{"a.pak.bak", false},
		{"a.zip", false},
		{"profile.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsModFile(tt.name))
		})
	}
}

func TestValidateProfileName(t *testing.T) {
	valid := []string{"Default", "ranked setup", "skins-v2", "Ünïcode"}
	for _, name := range valid {
		assert.NoError(t, domain.ValidateProfileName(name), name)
	}

	invalid := []string{"", "   ", "a/b", `a\b`, "a:b", "a*", "what?", "<x>", `"q"`, "a|b", ".", ".."}
	for _, name := range invalid {
		err := domain.ValidateProfileName(name)
		assert.ErrorIs(t, err, domain.ErrInvalidName, "%q should be rejected", name)
	}
}

func TestProfile_HasMod(t *testing.T) {
	p := &domain.Profile{Name: "P", Mods: []string{"a.pak", "b.pak"}}
	assert.True(t, p.HasMod("a.pak"))
	assert.False(t, p.HasMod("c.pak"))
}

func TestGame_ModsPath(t *testing.T) {
	g := domain.Game{Root: "/games/MarvelRivals"}
	assert.Equal(t, filepath.Join("/games/MarvelRivals", "MarvelGame", "Marvel", "Content", "Paks", "Mods"), g.ModsPath())
	assert.Equal(t, filepath.Join("/games/MarvelRivals", "MarvelRivals_Launcher.exe"), g.LauncherPath())
}

func TestIsGameRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/game/MarvelRivals_Launcher.exe", []byte("MZ"), 0644))
	require.NoError(t, fs.MkdirAll("/other", 0755))

	assert.True(t, domain.IsGameRoot(fs, "/game"))
	assert.False(t, domain.IsGameRoot(fs, "/other"))
	assert.False(t, domain.IsGameRoot(fs, ""))
}

func TestProfileNotFound_IsNotFound(t *testing.T) {
	assert.ErrorIs(t, domain.ErrProfileNotFound, domain.ErrNotFound)
	assert.Equal(t, "profile not found", domain.ErrProfileNotFound.Error())
}

func TestIOError(t *testing.T) {
	assert.NoError(t, domain.NewIOError("copy", "/x", nil))

	err := domain.NewIOError("remove", "/mods/a.pak", fs.ErrPermission)
	assert.ErrorIs(t, err, domain.ErrIOFailure)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "remove /mods/a.pak")

	var ioErr *domain.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "remove", ioErr.Op)
}

func TestPackagedFile_Open(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/x/nested/a.pak", []byte("data"), 0644))

	f := domain.NewPackagedFile(fs, "/tmp/x/nested/a.pak")
	assert.Equal(t, "a.pak", f.Name)

	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = domain.NewPackagedFile(fs, "/missing.pak").Open()
	assert.ErrorIs(t, err, domain.ErrIOFailure)
}
