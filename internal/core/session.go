package core

import (
	"errors"
	"sort"

	"mrmm/internal/domain"
	"mrmm/internal/logging"

	"github.com/spf13/afero"
)

// TempTracker owns the temporary extraction directories of one session.
// Directories are removed when released or, at the latest, on Cleanup.
type TempTracker struct {
	fs   afero.Fs
	dirs map[string]struct{}
}

// NewTempTracker creates an empty tracker
func NewTempTracker(fs afero.Fs) *TempTracker {
	return &TempTracker{
		fs:   fs,
		dirs: make(map[string]struct{}),
	}
}

// Track registers dir for removal. Empty paths are ignored.
func (t *TempTracker) Track(dir string) {
	if dir == "" {
		return
	}
	t.dirs[dir] = struct{}{}
}

// Release removes dir now and stops tracking it
func (t *TempTracker) Release(dir string) error {
	if dir == "" {
		return nil
	}
	delete(t.dirs, dir)
	if err := t.fs.RemoveAll(dir); err != nil {
		return domain.NewIOError("remove", dir, err)
	}
	return nil
}

// Tracked returns the directories still pending removal, sorted
func (t *TempTracker) Tracked() []string {
	dirs := make([]string, 0, len(t.dirs))
	for dir := range t.dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Cleanup removes every tracked directory. Failures are logged and
// returned joined; every directory is attempted.
func (t *TempTracker) Cleanup() error {
	log := logging.GetLogger("session")
	var errs []error
	for _, dir := range t.Tracked() {
		if err := t.Release(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("Failed to remove temp directory")
			errs = append(errs, err)
			continue
		}
		log.Debug().Str("dir", dir).Msg("Removed temp directory")
	}
	return errors.Join(errs...)
}
