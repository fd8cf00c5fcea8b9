package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RemoveLiveModMsg asks to delete one mod from the live directory
type RemoveLiveModMsg struct {
	Name string
}

// ClearAllMsg asks to empty the live directory and the current profile
type ClearAllMsg struct{}

// LiveMod is one row of the live view
type LiveMod struct {
	Name   string
	Origin string
}

// Live lists the mods the game will load
type Live struct {
	theme      Theme
	keys       Keys
	gameDir    string
	profile    string
	mods       []LiveMod
	cur        selection
	confirming bool
}

// NewLive creates the live mods view
func NewLive(theme Theme, keys Keys) Live {
	return Live{theme: theme, keys: keys}
}

// SetData replaces the rows shown, keeping the selection in range
func (m Live) SetData(gameDir, profile string, mods []LiveMod) Live {
	m.gameDir = gameDir
	m.profile = profile
	m.mods = mods
	m.cur.resize(len(mods))
	return m
}

// SetTheme switches the styles used for rendering
func (m Live) SetTheme(theme Theme) Live {
	m.theme = theme
	return m
}

// Selected returns the currently selected index
func (m Live) Selected() int {
	return m.cur.selected
}

// ModCount returns the number of live mods
func (m Live) ModCount() int {
	return len(m.mods)
}

// Capturing reports whether the view wants every key (confirm prompt)
func (m Live) Capturing() bool {
	return m.confirming
}

// Init implements tea.Model
func (m Live) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		m.confirming = false
		if key.String() == "y" {
			return m, func() tea.Msg { return ClearAllMsg{} }
		}
		return m, nil
	}

	if m.cur.move(m.keys, key) {
		return m, nil
	}

	switch {
	case m.keys.IsDelete(key):
		if len(m.mods) == 0 {
			return m, nil
		}
		name := m.mods[m.cur.selected].Name
		return m, func() tea.Msg { return RemoveLiveModMsg{Name: name} }

	case key.String() == "x":
		m.confirming = true
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m Live) View() string {
	var b strings.Builder
	t := m.theme

	b.WriteString(t.Title.Render("Active Mods") + "\n")

	gameDir := m.gameDir
	if gameDir == "" {
		gameDir = "not set"
	}
	profile := m.profile
	if profile == "" {
		profile = "none"
	}
	b.WriteString(t.Info.Render(fmt.Sprintf("Game: %s  Profile: %s", gameDir, profile)) + "\n\n")

	if len(m.mods) == 0 {
		b.WriteString(t.Item.Render("No mods are active.") + "\n\n")
		b.WriteString(t.Info.Render("Stage .pak files or archives in [2] and apply them.") + "\n")
	} else {
		b.WriteString(t.Info.Render(fmt.Sprintf("%d mods:", len(m.mods))) + "\n\n")
		for i, mod := range m.mods {
			selected := i == m.cur.selected
			style := t.Item
			if selected {
				style = t.Selected
			}
			b.WriteString(style.Render(cursorMark(selected)+mod.Name) + "\n")
			if selected && mod.Origin != "" {
				b.WriteString(t.Detail.Render("from "+mod.Origin) + "\n")
			}
		}
	}

	if m.confirming {
		b.WriteString("\n" + t.Error.Render("Remove every mod from the game and the current profile? (y/N)"))
		return b.String()
	}
	b.WriteString(t.Help.Render(m.keys.NavigationHelp() + "  d: remove  x: clear all"))
	return b.String()
}
