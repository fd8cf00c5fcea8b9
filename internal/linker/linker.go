// Package linker places packaged mod files into directories and keeps a
// directory's mod set in line with a requested target set.
package linker

import (
	"errors"
	"io"
	"os"
	"sort"

	"mrmm/internal/domain"

	"github.com/spf13/afero"
)

// Provider opens the bytes for a mod name that is about to be placed
type Provider func(name string) (io.ReadCloser, error)

// DirProvider serves mod files out of dir on fs
func DirProvider(fs afero.Fs, dir string) Provider {
	return func(name string) (io.ReadCloser, error) {
		return domain.NewPackagedFile(fs, joinName(dir, name)).Open()
	}
}

// ListModFiles returns the sorted names of mod files directly inside dir.
// A missing directory holds no mods.
func ListModFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, domain.NewIOError("list", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		if domain.IsModFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListPackagedFiles is ListModFiles returning openable files
func ListPackagedFiles(fs afero.Fs, dir string) ([]domain.PackagedFile, error) {
	names, err := ListModFiles(fs, dir)
	if err != nil {
		return nil, err
	}
	files := make([]domain.PackagedFile, len(names))
	for i, name := range names {
		files[i] = domain.NewPackagedFile(fs, joinName(dir, name))
	}
	return files, nil
}
