package core

import (
	"fmt"
	"io"

	"mrmm/internal/domain"
	"mrmm/internal/linker"
	"mrmm/internal/logging"
)

// StagingEntry is a mod file waiting to be applied to the live directory
type StagingEntry struct {
	File    domain.PackagedFile
	Origin  string // File the user picked: the archive or the .pak itself
	TempDir string // Extraction directory holding File, if any
}

// StagingSet is the session's ordered, name-unique list of pending mods.
// It lives only in memory.
type StagingSet struct {
	entries []StagingEntry
	temps   *TempTracker
}

// NewStagingSet creates an empty staging set releasing temp dirs via temps
func NewStagingSet(temps *TempTracker) *StagingSet {
	return &StagingSet{temps: temps}
}

// Add appends file unless a mod with the same name is already staged.
// It returns false for such a duplicate, which is not an error.
func (s *StagingSet) Add(file domain.PackagedFile, origin, tempDir string) bool {
	if s.indexOf(file.Name) >= 0 {
		return false
	}
	s.entries = append(s.entries, StagingEntry{File: file, Origin: origin, TempDir: tempDir})
	return true
}

// Remove drops the named entry, releasing its temp dir once nothing else
// staged lives there. It returns false if name was not staged.
func (s *StagingSet) Remove(name string) bool {
	i := s.indexOf(name)
	if i < 0 {
		return false
	}
	entry := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.ReleaseUnused(entry.TempDir)
	return true
}

// List returns staged names in insertion order
func (s *StagingSet) List() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.File.Name
	}
	return names
}

// Entries returns a copy of the staged entries in insertion order
func (s *StagingSet) Entries() []StagingEntry {
	out := make([]StagingEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry staged under name
func (s *StagingSet) Get(name string) (StagingEntry, bool) {
	i := s.indexOf(name)
	if i < 0 {
		return StagingEntry{}, false
	}
	return s.entries[i], true
}

// Len returns the number of staged entries
func (s *StagingSet) Len() int {
	return len(s.entries)
}

// Clear empties the set without touching any mod file. Temp dirs of the
// cleared entries are released.
func (s *StagingSet) Clear() {
	dirs := make(map[string]bool)
	for _, e := range s.entries {
		if e.TempDir != "" {
			dirs[e.TempDir] = true
		}
	}
	s.entries = nil
	for dir := range dirs {
		s.release(dir)
	}
}

// ReleaseUnused releases dir if no staged entry refers to it
func (s *StagingSet) ReleaseUnused(dir string) {
	if dir == "" {
		return
	}
	for _, e := range s.entries {
		if e.TempDir == dir {
			return
		}
	}
	s.release(dir)
}

// Provider opens staged files by name for linker.Reconcile
func (s *StagingSet) Provider() linker.Provider {
	return func(name string) (io.ReadCloser, error) {
		entry, ok := s.Get(name)
		if !ok {
			return nil, fmt.Errorf("%s is not staged: %w", name, domain.ErrNotFound)
		}
		return entry.File.Open()
	}
}

func (s *StagingSet) indexOf(name string) int {
	for i, e := range s.entries {
		if e.File.Name == name {
			return i
		}
	}
	return -1
}

func (s *StagingSet) release(dir string) {
	if s.temps == nil {
		return
	}
	if err := s.temps.Release(dir); err != nil {
		log := logging.GetLogger("staging")
		log.Warn().Err(err).Str("dir", dir).Msg("Failed to release temp directory")
	}
}
