package domain

import (
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// LauncherExecutable must sit directly inside a valid game root
	LauncherExecutable = "MarvelRivals_Launcher.exe"

	// SteamAppID identifies Marvel Rivals on Steam
	SteamAppID = "2767030"
)

// liveModsSegments is the fixed layout from the game root to the live mods directory
var liveModsSegments = []string{"MarvelGame", "Marvel", "Content", "Paks", "Mods"}

// Game is a Marvel Rivals installation
type Game struct {
	Root string // Game installation directory
}

// ModsPath returns the live mods directory the game loads .pak files from
func (g Game) ModsPath() string {
	return filepath.Join(append([]string{g.Root}, liveModsSegments...)...)
}

// LauncherPath returns the expected launcher executable path
func (g Game) LauncherPath() string {
	return filepath.Join(g.Root, LauncherExecutable)
}

// IsGameRoot reports whether dir contains the game launcher
func IsGameRoot(fs afero.Fs, dir string) bool {
	if dir == "" {
		return false
	}
	info, err := fs.Stat(filepath.Join(dir, LauncherExecutable))
	return err == nil && !info.IsDir()
}
