package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// StageFileMsg asks to extract and stage a file
type StageFileMsg struct {
	Path string
}

// UnstageMsg asks to drop one staged mod
type UnstageMsg struct {
	Name string
}

// ApplyStagingMsg asks to copy every staged mod into the game
type ApplyStagingMsg struct{}

// ClearStagingMsg asks to empty the staging list
type ClearStagingMsg struct{}

// StagedMod is one row of the staging view
type StagedMod struct {
	Name   string
	Origin string
}

// Staging lists mods waiting to be applied
type Staging struct {
	theme     Theme
	keys      Keys
	mods      []StagedMod
	cur       selection
	adding    bool
	pathInput textinput.Model
}

// NewStaging creates the staging view
func NewStaging(theme Theme, keys Keys) Staging {
	ti := textinput.New()
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Placeholder = "/path/to/mod.zip, .7z, .rar or .pak"
	ti.CharLimit = 4096
	ti.Width = 60

	return Staging{theme: theme, keys: keys, pathInput: ti}
}

// SetData replaces the rows shown
func (s Staging) SetData(mods []StagedMod) Staging {
	s.mods = mods
	s.cur.resize(len(mods))
	return s
}

// SetTheme switches the styles used for rendering
func (s Staging) SetTheme(theme Theme) Staging {
	s.theme = theme
	return s
}

// Selected returns the currently selected index
func (s Staging) Selected() int {
	return s.cur.selected
}

// IsAdding reports whether the path prompt is open
func (s Staging) IsAdding() bool {
	return s.adding
}

// Capturing reports whether the view wants every key
func (s Staging) Capturing() bool {
	return s.adding
}

// Init implements tea.Model
func (s Staging) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s Staging) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.adding {
			var cmd tea.Cmd
			s.pathInput, cmd = s.pathInput.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.adding {
		return s.handleAddMode(key)
	}

	if s.cur.move(s.keys, key) {
		return s, nil
	}

	switch {
	case key.String() == "a":
		s.adding = true
		s.pathInput.Focus()
		return s, nil

	case key.String() == "A" || (s.keys.IsConfirm(key) && len(s.mods) > 0):
		return s, func() tea.Msg { return ApplyStagingMsg{} }

	case s.keys.IsDelete(key):
		if len(s.mods) == 0 {
			return s, nil
		}
		name := s.mods[s.cur.selected].Name
		return s, func() tea.Msg { return UnstageMsg{Name: name} }

	case key.String() == "c":
		return s, func() tea.Msg { return ClearStagingMsg{} }
	}

	return s, nil
}

func (s Staging) handleAddMode(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		s.adding = false
		s.pathInput.Reset()
		s.pathInput.Blur()
		return s, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(s.pathInput.Value())
		s.adding = false
		s.pathInput.Reset()
		s.pathInput.Blur()
		if path == "" {
			return s, nil
		}
		return s, func() tea.Msg { return StageFileMsg{Path: path} }
	}

	var cmd tea.Cmd
	s.pathInput, cmd = s.pathInput.Update(key)
	return s, cmd
}

// View implements tea.Model
func (s Staging) View() string {
	var b strings.Builder
	t := s.theme

	b.WriteString(t.Title.Render("Staging") + "\n")

	if s.adding {
		b.WriteString(t.Info.Render("File to stage:") + "\n")
		b.WriteString(s.pathInput.View() + "\n\n")
		b.WriteString(t.Help.Render("enter: stage  esc: cancel"))
		return b.String()
	}

	if len(s.mods) == 0 {
		b.WriteString(t.Item.Render("Nothing staged.") + "\n")
	} else {
		b.WriteString(t.Info.Render(fmt.Sprintf("%d mods waiting:", len(s.mods))) + "\n\n")
		for i, mod := range s.mods {
			selected := i == s.cur.selected
			style := t.Item
			if selected {
				style = t.Selected
			}
			b.WriteString(style.Render(cursorMark(selected)+mod.Name) + "\n")
			if selected {
				b.WriteString(t.Detail.Render("from "+mod.Origin) + "\n")
			}
		}
	}

	b.WriteString(t.Help.Render(s.keys.NavigationHelp() + "  a: add file  enter/A: apply  d: unstage  c: clear"))
	return b.String()
}
