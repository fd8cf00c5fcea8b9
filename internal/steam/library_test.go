package steam_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"mrmm/internal/domain"
	"mrmm/internal/steam"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func appManifest(installDir string) string {
	return `"AppState"
{
	"appid"		"2767030"
	"name"		"Marvel Rivals"
	"installdir"		"` + installDir + `"
}`
}

func TestLocator_DetectGameRootInSecondaryLibrary(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/home/u/.steam/steam/steamapps/libraryfolders.vdf", `
"libraryfolders"
{
	"0" { "path" "/home/u/.steam/steam" }
	"1" { "path" "/mnt/games" }
}`)
	write(t, fs, "/mnt/games/steamapps/appmanifest_2767030.acf", appManifest("MarvelRivals"))
	write(t, fs, "/mnt/games/steamapps/common/MarvelRivals/"+domain.LauncherExecutable, "exe")

	loc := steam.NewLocator(fs, "/missing/root", "/home/u/.steam/steam")
	assert.Equal(t, []string{"/home/u/.steam/steam"}, loc.Roots())

	dir, err := loc.DetectGameRoot()
	require.NoError(t, err)
	assert.Equal(t, "/mnt/games/steamapps/common/MarvelRivals", dir)
}

func TestLocator_RootWithoutLibraryFolders(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/steam", 0755))

	paths, err := steam.NewLocator(fs, "/steam").LibraryPaths("/steam")
	require.NoError(t, err)
	assert.Equal(t, []string{"/steam"}, paths)
}

func TestLocator_NotInstalled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/steam/steamapps", 0755))

	_, err := steam.NewLocator(fs, "/steam").DetectGameRoot()
	assert.ErrorIs(t, err, steam.ErrNotInstalled)
}

func TestLocator_InstallWithoutLauncher(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "/steam/steamapps/appmanifest_2767030.acf", appManifest("MarvelRivals"))
	require.NoError(t, fs.MkdirAll("/steam/steamapps/common/MarvelRivals", 0755))

	_, err := steam.NewLocator(fs, "/steam").DetectGameRoot()
	assert.ErrorIs(t, err, domain.ErrInvalidGameDir)
}

func TestLaunch(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	require.NoError(t, steam.Launch(context.Background(), run, domain.SteamAppID))
	assert.Equal(t, "xdg-open", gotName)
	assert.Equal(t, []string{"steam://rungameid/2767030"}, gotArgs)

	failing := func(ctx context.Context, name string, args ...string) error {
		return errors.New("no opener")
	}
	assert.Error(t, steam.Launch(context.Background(), failing, domain.SteamAppID))
}
