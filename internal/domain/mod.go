package domain

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ModExtension is the suffix that identifies a packaged mod file.
// The game matches it case-sensitively, so we do too.
const ModExtension = ".pak"

// IsModFile reports whether name is a packaged mod file
func IsModFile(name string) bool {
	return strings.HasSuffix(name, ModExtension) && len(name) > len(ModExtension)
}

// PackagedFile is a single mod file. Name is its identity: two files with
// the same name are the same mod regardless of where they came from.
type PackagedFile struct {
	Name string // Base file name, e.g. "pakchunk99-Mods_P.pak"
	Path string // Where the bytes currently live

	fs afero.Fs
}

// NewPackagedFile describes the file at path on fs
func NewPackagedFile(fs afero.Fs, path string) PackagedFile {
	return PackagedFile{
		Name: filepath.Base(path),
		Path: path,
		fs:   fs,
	}
}

// Open returns a reader over the file's bytes
func (f PackagedFile) Open() (io.ReadCloser, error) {
	fs := f.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	file, err := fs.Open(f.Path)
	if err != nil {
		return nil, NewIOError("open", f.Path, err)
	}
	return file, nil
}
