package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"mrmm/internal/domain"
	"mrmm/internal/linker"
	"mrmm/internal/logging"
	"mrmm/internal/storage/config"

	"github.com/spf13/afero"
)

// ProfilesDirName is the profile store directory inside the data dir
const ProfilesDirName = "profiles"

// ProfileStore keeps named mod collections as directories under root,
// each holding copies of its mod files and a profile.json manifest.
// The manifest is derived from the directory listing and rewritten from
// it whenever a profile is consulted.
type ProfileStore struct {
	fs   afero.Fs
	root string
}

// NewProfileStore creates a store rooted at root
func NewProfileStore(fs afero.Fs, root string) *ProfileStore {
	return &ProfileStore{fs: fs, root: root}
}

// Root returns the store directory
func (ps *ProfileStore) Root() string {
	return ps.root
}

// RootExists reports whether the store directory has ever been created
func (ps *ProfileStore) RootExists() (bool, error) {
	ok, err := afero.DirExists(ps.fs, ps.root)
	if err != nil {
		return false, domain.NewIOError("stat", ps.root, err)
	}
	return ok, nil
}

// Path returns the directory of the named profile
func (ps *ProfileStore) Path(name string) string {
	return filepath.Join(ps.root, name)
}

// Exists reports whether the named profile directory exists
func (ps *ProfileStore) Exists(name string) bool {
	if domain.ValidateProfileName(name) != nil {
		return false
	}
	ok, err := afero.DirExists(ps.fs, ps.Path(name))
	return err == nil && ok
}

// List returns the sorted profile names. A missing store has none, and
// directories whose names are not valid profile names are ignored.
func (ps *ProfileStore) List() ([]string, error) {
	entries, err := afero.ReadDir(ps.fs, ps.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, domain.NewIOError("list", ps.root, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := domain.ValidateProfileName(entry.Name()); err != nil {
			log := logging.GetLogger("profiles")
			log.Debug().Str("dir", entry.Name()).Msg("Skipping directory with an invalid profile name")
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Create makes a new profile holding a copy of every snapshot file. The
// name is validated and checked for collisions before anything is written.
// Copy failures are best-effort: the profile is still returned, with a
// manifest of what was copied, alongside the joined error.
func (ps *ProfileStore) Create(name string, snapshot []domain.PackagedFile) (*domain.Profile, error) {
	if err := domain.ValidateProfileName(name); err != nil {
		return nil, err
	}

	dir := ps.Path(name)
	if _, err := ps.fs.Stat(dir); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNameCollision, name)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, domain.NewIOError("stat", dir, err)
	}

	if err := ps.fs.MkdirAll(dir, 0755); err != nil {
		return nil, domain.NewIOError("mkdir", dir, err)
	}

	byName := make(map[string]domain.PackagedFile, len(snapshot))
	target := make([]string, 0, len(snapshot))
	for _, f := range snapshot {
		if _, dup := byName[f.Name]; dup {
			continue
		}
		byName[f.Name] = f
		target = append(target, f.Name)
	}

	_, copyErr := linker.Reconcile(ps.fs, dir, target, func(n string) (io.ReadCloser, error) {
		return byName[n].Open()
	})

	mods, err := ps.RefreshManifest(name)
	if err != nil {
		return nil, errors.Join(copyErr, err)
	}

	log := logging.GetLogger("profiles")
	log.Info().Str("profile", name).Int("mods", len(mods)).Msg("Created profile")
	return &domain.Profile{Name: name, Path: dir, Mods: mods}, copyErr
}

// Delete removes a profile directory and everything in it
func (ps *ProfileStore) Delete(name string) error {
	if err := domain.ValidateProfileName(name); err != nil {
		return err
	}
	if !ps.Exists(name) {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}
	dir := ps.Path(name)
	if err := ps.fs.RemoveAll(dir); err != nil {
		return domain.NewIOError("remove", dir, err)
	}
	log := logging.GetLogger("profiles")
	log.Info().Str("profile", name).Msg("Deleted profile")
	return nil
}

// RefreshManifest rewrites the manifest from the profile's directory
// listing and returns it
func (ps *ProfileStore) RefreshManifest(name string) ([]string, error) {
	if err := domain.ValidateProfileName(name); err != nil {
		return nil, err
	}
	if !ps.Exists(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}

	dir := ps.Path(name)
	mods, err := linker.ListModFiles(ps.fs, dir)
	if err != nil {
		return nil, err
	}
	if err := config.WriteManifest(ps.fs, dir, mods); err != nil {
		return nil, err
	}
	return mods, nil
}

// RefreshAll refreshes every profile's manifest and returns the profiles.
// A profile that fails to refresh is skipped and its error joined into
// the result.
func (ps *ProfileStore) RefreshAll() ([]*domain.Profile, error) {
	names, err := ps.List()
	if err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0, len(names))
	var errs []error
	for _, name := range names {
		mods, err := ps.RefreshManifest(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("refreshing %s: %w", name, err))
			continue
		}
		profiles = append(profiles, &domain.Profile{Name: name, Path: ps.Path(name), Mods: mods})
	}
	return profiles, errors.Join(errs...)
}

// ReadManifest returns the recorded mod list of a profile. A missing or
// unreadable manifest is regenerated from the directory.
func (ps *ProfileStore) ReadManifest(name string) ([]string, error) {
	if err := domain.ValidateProfileName(name); err != nil {
		return nil, err
	}
	if !ps.Exists(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}

	mods, err := config.ReadManifest(ps.fs, ps.Path(name))
	if err != nil {
		log := logging.GetLogger("profiles")
		log.Debug().Err(err).Str("profile", name).Msg("Regenerating manifest")
		return ps.RefreshManifest(name)
	}
	return mods, nil
}

// Get refreshes and returns the named profile
func (ps *ProfileStore) Get(name string) (*domain.Profile, error) {
	mods, err := ps.RefreshManifest(name)
	if err != nil {
		return nil, err
	}
	return &domain.Profile{Name: name, Path: ps.Path(name), Mods: mods}, nil
}

// Provider serves the named profile's mod files
func (ps *ProfileStore) Provider(name string) linker.Provider {
	return linker.DirProvider(ps.fs, ps.Path(name))
}
