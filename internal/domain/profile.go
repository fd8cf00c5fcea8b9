package domain

import (
	"fmt"
	"strings"
)

const (
	// DefaultProfileName is created on first run when the store is empty
	DefaultProfileName = "Default"

	// ManifestFileName is the derived mod list kept inside every profile directory
	ManifestFileName = "profile.json"

	// ReservedNameChars may not appear in a profile name
	ReservedNameChars = `<>:"/\|?*`
)

// Profile is a named snapshot of active mods stored in its own directory
type Profile struct {
	Name string   // Directory name, case-sensitive
	Path string   // Absolute profile directory
	Mods []string // Manifest: mod files present in Path, sorted by name
}

// HasMod reports whether the profile manifest lists name
func (p *Profile) HasMod(name string) bool {
	for _, m := range p.Mods {
		if m == name {
			return true
		}
	}
	return false
}

// ValidateProfileName checks that name can be used as a profile directory
func ValidateProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, ReservedNameChars) {
		return fmt.Errorf("%w: %q cannot contain any of %s", ErrInvalidName, name, ReservedNameChars)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
