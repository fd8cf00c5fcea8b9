package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Keybinding styles accepted in config.yaml
const (
	KeysVim      = "vim"
	KeysStandard = "standard"
)

// KeyMap defines keybindings for the TUI
type KeyMap struct {
	mode string
}

// NewKeyMap creates a new keymap for the given mode. Unknown modes fall
// back to vim.
func NewKeyMap(mode string) *KeyMap {
	if mode != KeysStandard {
		mode = KeysVim
	}
	return &KeyMap{mode: mode}
}

// Mode returns the current keybinding mode
func (k *KeyMap) Mode() string {
	return k.mode
}

// vimOnly matches a letter binding that only exists in vim mode
func (k *KeyMap) vimOnly(msg tea.KeyMsg, key string) bool {
	return k.mode == KeysVim && msg.String() == key
}

// IsUp returns true if the key is an "up" navigation key
func (k *KeyMap) IsUp(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyUp || k.vimOnly(msg, "k")
}

// IsDown returns true if the key is a "down" navigation key
func (k *KeyMap) IsDown(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyDown || k.vimOnly(msg, "j")
}

// IsHome returns true if the key should go to first item
func (k *KeyMap) IsHome(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyHome || k.vimOnly(msg, "g")
}

// IsEnd returns true if the key should go to last item
func (k *KeyMap) IsEnd(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnd || k.vimOnly(msg, "G")
}

// IsConfirm returns true if the key is a confirm/select key
func (k *KeyMap) IsConfirm(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace || msg.String() == " "
}

// IsCancel returns true if the key is a cancel/back key
func (k *KeyMap) IsCancel(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc
}

// IsQuit returns true if the key is a quit key
func (k *KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return msg.String() == "q" || msg.Type == tea.KeyCtrlC
}

// IsHelp returns true if the key should show help
func (k *KeyMap) IsHelp(msg tea.KeyMsg) bool {
	return msg.String() == "?"
}

// IsDelete returns true if the key is a delete key
func (k *KeyMap) IsDelete(msg tea.KeyMsg) bool {
	return msg.String() == "d" || msg.Type == tea.KeyDelete
}

// IsNextTab returns true if the key should move to the next screen
func (k *KeyMap) IsNextTab(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyTab
}

// IsToggleTheme returns true if the key switches between dark and light
func (k *KeyMap) IsToggleTheme(msg tea.KeyMsg) bool {
	return msg.String() == "T"
}

// NavigationHelp returns help text for navigation keys
func (k *KeyMap) NavigationHelp() string {
	if k.mode == KeysVim {
		return "j/k: navigate"
	}
	return "↑/↓: navigate"
}

// FullHelp returns complete help text
func (k *KeyMap) FullHelp() string {
	nav := `  j/k     Move down/up
  g/G     Go to first/last item`
	if k.mode == KeysStandard {
		nav = `  ↑/↓     Move up/down
  Home    Go to first item
  End     Go to last item`
	}

	return `Navigation:
` + nav + `
  1-4     Switch screen (tab cycles)

Active mods:
  d       Remove mod from the game
  x       Clear game and current profile

Staging:
  a       Stage a .pak or archive
  enter   Apply staged mods
  d       Unstage
  c       Clear staging

Profiles:
  enter   Load profile
  n       Save active mods as a new profile
  d       Delete profile

General:
  T       Toggle dark theme
  ?       Help
  q       Quit (syncs the current profile)`
}
