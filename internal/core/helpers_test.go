package core_test

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"mrmm/internal/core"
	"mrmm/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	Name    string
	Content string
}

func writeZip(t *testing.T, fs afero.Fs, path string, entries []zipEntry) string {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	f, err := fs.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.Name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(e.Content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

// listMods returns the sorted .pak names directly in dir
func listMods(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		if !e.IsDir() && domain.IsModFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

type testEnv struct {
	fs      afero.Fs
	svc     *core.Service
	game    domain.Game
	config  string
	data    string
	liveDir string
}

const testGameRoot = "/games/MarvelRivals"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvOn(t, afero.NewMemMapFs())
}

// newTestEnvOn builds the standard layout on fs
func newTestEnvOn(t *testing.T, fs afero.Fs) *testEnv {
	t.Helper()
	writeFile(t, fs, filepath.Join(testGameRoot, domain.LauncherExecutable), "exe")

	env := &testEnv{
		fs:     fs,
		game:   domain.Game{Root: testGameRoot},
		config: "/home/user/.config/mrmm",
		data:   "/home/user/.local/share/mrmm",
	}
	env.liveDir = env.game.ModsPath()
	env.svc = env.open(t)
	require.NoError(t, env.svc.SetGameDir(testGameRoot))
	return env
}

// open starts a new session on the same filesystem
func (e *testEnv) open(t *testing.T) *core.Service {
	t.Helper()
	svc, err := core.NewService(core.ServiceConfig{
		ConfigDir: e.config,
		DataDir:   e.data,
		TempDir:   "/tmp",
		DBPath:    ":memory:",
		Fs:        e.fs,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func (e *testEnv) putLive(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		writeFile(t, e.fs, filepath.Join(e.liveDir, n), "live:"+n)
	}
}

func (e *testEnv) profileDir(name string) string {
	return filepath.Join(e.data, core.ProfilesDirName, name)
}

// faultyFs fails writes and removals of the paths in blocked
type faultyFs struct {
	afero.Fs
	blocked map[string]bool
}

func newFaultyFs() *faultyFs {
	return &faultyFs{Fs: afero.NewMemMapFs(), blocked: map[string]bool{}}
}

var errInjected = errors.New("injected failure")

func (f *faultyFs) Remove(name string) error {
	if f.blocked[name] {
		return &os.PathError{Op: "remove", Path: name, Err: errInjected}
	}
	return f.Fs.Remove(name)
}

func (f *faultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if f.blocked[name] && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return f.Fs.OpenFile(name, flag, perm)
}
