// Package config provides configuration and profile manifest persistence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mrmm/internal/domain"

	"github.com/spf13/afero"
)

// ParseGameDir validates a game installation path and returns the cleaned path if valid.
// It returns an error if:
//   - The path is empty
//   - The path is not absolute
//   - The path contains parent directory traversal (..)
//   - The directory does not exist
//   - The path points to a file instead of a directory
//   - The launcher executable is missing from the directory
func ParseGameDir(fs afero.Fs, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: path cannot be empty", domain.ErrInvalidGameDir)
	}

	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: path must be absolute", domain.ErrInvalidGameDir)
	}

	if strings.Contains(path, "..") {
		return "", fmt.Errorf("%w: path contains invalid traversal", domain.ErrInvalidGameDir)
	}

	path = filepath.Clean(path)

	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s does not exist", domain.ErrInvalidGameDir, path)
		}
		return "", err
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is a file, not a directory", domain.ErrInvalidGameDir, path)
	}

	if !domain.IsGameRoot(fs, path) {
		return "", fmt.Errorf("%w: %s not found in %s", domain.ErrInvalidGameDir, domain.LauncherExecutable, path)
	}

	return path, nil
}
