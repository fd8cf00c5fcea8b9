package steam

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mrmm/internal/domain"
	"mrmm/internal/logging"

	"github.com/spf13/afero"
)

// ErrNotInstalled is returned when no Steam library holds the app
var ErrNotInstalled = errors.New("not installed in any Steam library")

// Locator searches Steam installations on a filesystem
type Locator struct {
	fs    afero.Fs
	roots []string // Candidate Steam roots in search order
}

// NewLocator searches the given Steam roots. With none, DefaultRoots is used.
func NewLocator(fs afero.Fs, roots ...string) *Locator {
	if len(roots) == 0 {
		roots = DefaultRoots()
	}
	return &Locator{fs: fs, roots: roots}
}

// DefaultRoots returns the usual Steam install locations on Linux,
// preceded by $STEAM_ROOT when set
func DefaultRoots() []string {
	var roots []string
	if p := os.Getenv("STEAM_ROOT"); p != "" {
		roots = append(roots, p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		)
	}
	return roots
}

// Roots returns the candidate roots that exist
func (l *Locator) Roots() []string {
	var out []string
	for _, p := range l.roots {
		if ok, err := afero.DirExists(l.fs, p); err == nil && ok {
			out = append(out, p)
		}
	}
	return out
}

// LibraryPaths returns every library listed in a root's libraryfolders.vdf.
// Without that file the root itself is the only library.
func (l *Locator) LibraryPaths(steamRoot string) ([]string, error) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	f, err := l.fs.Open(vdfPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{steamRoot}, nil
		}
		return nil, fmt.Errorf("reading libraryfolders: %w", err)
	}
	defer f.Close()

	root, err := ParseVDF(f)
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders: %w", err)
	}
	paths := libraryPaths(root)
	if len(paths) == 0 {
		return []string{steamRoot}, nil
	}
	return paths, nil
}

// FindApp returns the install directory of appID in the first library
// that has it installed
func (l *Locator) FindApp(appID string) (string, error) {
	log := logging.GetLogger("steam")
	seen := make(map[string]bool)

	for _, steamRoot := range l.Roots() {
		libraries, err := l.LibraryPaths(steamRoot)
		if err != nil {
			log.Debug().Err(err).Str("root", steamRoot).Msg("Skipping Steam root")
			continue
		}
		for _, lib := range libraries {
			if seen[lib] {
				continue
			}
			seen[lib] = true

			manifestPath := filepath.Join(lib, "steamapps", "appmanifest_"+appID+".acf")
			f, err := l.fs.Open(manifestPath)
			if err != nil {
				continue
			}
			manifest, err := ParseAppManifest(f)
			f.Close()
			if err != nil || manifest.InstallDir == "" {
				log.Debug().Err(err).Str("manifest", manifestPath).Msg("Unusable app manifest")
				continue
			}

			installPath := filepath.Join(lib, "steamapps", "common", manifest.InstallDir)
			if ok, _ := afero.DirExists(l.fs, installPath); ok {
				return installPath, nil
			}
		}
	}
	return "", fmt.Errorf("app %s: %w", appID, ErrNotInstalled)
}

// DetectGameRoot finds the Marvel Rivals installation and checks that it
// is a valid game root
func (l *Locator) DetectGameRoot() (string, error) {
	dir, err := l.FindApp(domain.SteamAppID)
	if err != nil {
		return "", err
	}
	if !domain.IsGameRoot(l.fs, dir) {
		return "", fmt.Errorf("%w: %s not found in %s", domain.ErrInvalidGameDir, domain.LauncherExecutable, dir)
	}
	return dir, nil
}
