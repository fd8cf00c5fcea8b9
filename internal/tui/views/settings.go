package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SettingsData holds the current settings values
type SettingsData struct {
	GameDir     string
	DarkTheme   bool
	Keybindings string
}

// SetGameDirMsg asks to validate and store a game directory
type SetGameDirMsg struct {
	Path string
}

// DetectGameDirMsg asks to look for the game in Steam libraries
type DetectGameDirMsg struct{}

// SettingsChangedMsg is sent when a toggled setting is modified
type SettingsChangedMsg struct {
	Settings SettingsData
}

const (
	settingGameDir = iota
	settingTheme
	settingKeys
	settingCount
)

var keybindingModes = []string{"vim", "standard"}

// Settings is the settings view
type Settings struct {
	theme    Theme
	keys     Keys
	settings SettingsData
	cur      selection
	editing  bool
	dirInput textinput.Model
}

// NewSettings creates a new settings view
func NewSettings(theme Theme, keys Keys, settings SettingsData) Settings {
	ti := textinput.New()
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Placeholder = "/path/to/MarvelRivals"
	ti.CharLimit = 4096
	ti.Width = 60

	return Settings{
		theme:    theme,
		keys:     keys,
		settings: settings,
		cur:      selection{n: settingCount},
		dirInput: ti,
	}
}

// SetData replaces the values shown
func (s Settings) SetData(settings SettingsData) Settings {
	s.settings = settings
	return s
}

// SetTheme switches the styles used for rendering
func (s Settings) SetTheme(theme Theme) Settings {
	s.theme = theme
	return s
}

// SetKeys switches the keybinding style used for navigation
func (s Settings) SetKeys(keys Keys) Settings {
	s.keys = keys
	return s
}

// Selected returns the currently selected setting index
func (s Settings) Selected() int {
	return s.cur.selected
}

// CurrentSettings returns the current settings values
func (s Settings) CurrentSettings() SettingsData {
	return s.settings
}

// Capturing reports whether the view wants every key
func (s Settings) Capturing() bool {
	return s.editing
}

// Init implements tea.Model
func (s Settings) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s Settings) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.editing {
			var cmd tea.Cmd
			s.dirInput, cmd = s.dirInput.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.editing {
		return s.handleEditMode(key)
	}

	if s.cur.move(s.keys, key) {
		return s, nil
	}

	if key.String() == "D" {
		return s, func() tea.Msg { return DetectGameDirMsg{} }
	}

	if !s.keys.IsConfirm(key) && key.Type != tea.KeyLeft && key.Type != tea.KeyRight {
		return s, nil
	}

	switch s.cur.selected {
	case settingGameDir:
		s.editing = true
		s.dirInput.SetValue(s.settings.GameDir)
		s.dirInput.CursorEnd()
		s.dirInput.Focus()
		return s, nil

	case settingTheme:
		s.settings.DarkTheme = !s.settings.DarkTheme
		return s, s.emitChange()

	case settingKeys:
		next := 0
		for i, mode := range keybindingModes {
			if mode == s.settings.Keybindings {
				next = (i + 1) % len(keybindingModes)
			}
		}
		s.settings.Keybindings = keybindingModes[next]
		return s, s.emitChange()
	}

	return s, nil
}

func (s Settings) handleEditMode(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		s.editing = false
		s.dirInput.Blur()
		return s, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(s.dirInput.Value())
		s.editing = false
		s.dirInput.Blur()
		if path == "" {
			return s, nil
		}
		return s, func() tea.Msg { return SetGameDirMsg{Path: path} }
	}

	var cmd tea.Cmd
	s.dirInput, cmd = s.dirInput.Update(key)
	return s, cmd
}

func (s Settings) emitChange() tea.Cmd {
	settings := s.settings
	return func() tea.Msg {
		return SettingsChangedMsg{Settings: settings}
	}
}

// View implements tea.Model
func (s Settings) View() string {
	var b strings.Builder
	t := s.theme

	b.WriteString(t.Title.Render("Settings") + "\n\n")

	if s.editing {
		b.WriteString(t.Info.Render("Game directory (must contain MarvelRivals_Launcher.exe):") + "\n")
		b.WriteString(s.dirInput.View() + "\n\n")
		b.WriteString(t.Help.Render("enter: save  esc: cancel"))
		return b.String()
	}

	gameDir := s.settings.GameDir
	if gameDir == "" {
		gameDir = "not set"
	}
	theme := "light"
	if s.settings.DarkTheme {
		theme = "dark"
	}

	rows := []struct{ name, value, desc string }{
		{"Game Directory", gameDir, "Marvel Rivals install folder (D: detect from Steam)"},
		{"Theme", theme, "Color palette"},
		{"Keybindings", s.settings.Keybindings, "Keyboard navigation style"},
	}
	for i, row := range rows {
		selected := i == s.cur.selected
		style := t.Item
		if selected {
			style = t.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s: %s", cursorMark(selected), row.name, t.Value.Render(row.value))) + "\n")
		b.WriteString(t.Detail.Render(row.desc) + "\n\n")
	}

	b.WriteString(t.Help.Render(s.keys.NavigationHelp() + "  enter: change  D: detect game"))
	return b.String()
}
