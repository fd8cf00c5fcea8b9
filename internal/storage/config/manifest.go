package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mrmm/internal/domain"

	"github.com/spf13/afero"
)

// Manifest is the JSON representation of profile.json
type Manifest struct {
	Mods []string `json:"mods"`
}

// ReadManifest reads the mod list recorded in a profile directory.
// Both {"mods": [...]} and the older bare ["..."] form are accepted.
func ReadManifest(fs afero.Fs, profileDir string) ([]string, error) {
	path := filepath.Join(profileDir, domain.ManifestFileName)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("manifest %s: %w", path, domain.ErrNotFound)
		}
		return nil, domain.NewIOError("read", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		var legacy []string
		if lerr := json.Unmarshal(data, &legacy); lerr != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
		m.Mods = legacy
	}

	if m.Mods == nil {
		m.Mods = []string{}
	}
	return m.Mods, nil
}

// WriteManifest replaces profile.json with exactly the given mod list
func WriteManifest(fs afero.Fs, profileDir string, mods []string) error {
	if mods == nil {
		mods = []string{}
	}

	data, err := json.MarshalIndent(Manifest{Mods: mods}, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(profileDir, domain.ManifestFileName)
	if err := afero.WriteFile(fs, path, append(data, '\n'), 0644); err != nil {
		return domain.NewIOError("write", path, err)
	}
	return nil
}
