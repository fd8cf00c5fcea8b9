package views

import (
	"fmt"
	"strings"

	"mrmm/internal/domain"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadProfileMsg asks to replace the live mods with a profile
type LoadProfileMsg struct {
	Name string
}

// SaveProfileMsg asks to snapshot the live mods as a new profile
type SaveProfileMsg struct {
	Name string
}

// DeleteProfileMsg asks to delete a profile
type DeleteProfileMsg struct {
	Name string
}

// Profiles is the profile management view
type Profiles struct {
	theme         Theme
	keys          Keys
	profiles      []*domain.Profile
	activeProfile string
	cur           selection
	creating      bool
	confirming    bool
	nameInput     textinput.Model
}

// NewProfiles creates a new profiles view
func NewProfiles(theme Theme, keys Keys) Profiles {
	ti := textinput.New()
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Placeholder = "Profile name..."
	ti.CharLimit = 50
	ti.Width = 30

	return Profiles{theme: theme, keys: keys, nameInput: ti}
}

// SetData replaces the profiles shown
func (p Profiles) SetData(profiles []*domain.Profile, activeProfile string) Profiles {
	p.profiles = profiles
	p.activeProfile = activeProfile
	p.cur.resize(len(profiles))
	return p
}

// SetTheme switches the styles used for rendering
func (p Profiles) SetTheme(theme Theme) Profiles {
	p.theme = theme
	return p
}

// Selected returns the currently selected index
func (p Profiles) Selected() int {
	return p.cur.selected
}

// ProfileCount returns the number of profiles
func (p Profiles) ProfileCount() int {
	return len(p.profiles)
}

// IsCreating returns whether we're in create mode
func (p Profiles) IsCreating() bool {
	return p.creating
}

// Capturing reports whether the view wants every key
func (p Profiles) Capturing() bool {
	return p.creating || p.confirming
}

// SelectedProfile returns the currently selected profile
func (p Profiles) SelectedProfile() *domain.Profile {
	if len(p.profiles) == 0 || p.cur.selected >= len(p.profiles) {
		return nil
	}
	return p.profiles[p.cur.selected]
}

// Init implements tea.Model
func (p Profiles) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p Profiles) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.creating {
			var cmd tea.Cmd
			p.nameInput, cmd = p.nameInput.Update(msg)
			return p, cmd
		}
		return p, nil
	}

	if p.creating {
		return p.handleCreateMode(key)
	}
	if p.confirming {
		p.confirming = false
		if key.String() == "y" {
			if profile := p.SelectedProfile(); profile != nil {
				name := profile.Name
				return p, func() tea.Msg { return DeleteProfileMsg{Name: name} }
			}
		}
		return p, nil
	}

	if p.cur.move(p.keys, key) {
		return p, nil
	}

	switch {
	case p.keys.IsConfirm(key):
		if profile := p.SelectedProfile(); profile != nil {
			name := profile.Name
			return p, func() tea.Msg { return LoadProfileMsg{Name: name} }
		}
		return p, nil

	case key.String() == "n":
		p.creating = true
		p.nameInput.Focus()
		return p, nil

	case p.keys.IsDelete(key):
		if p.SelectedProfile() != nil {
			p.confirming = true
		}
		return p, nil
	}

	return p, nil
}

func (p Profiles) handleCreateMode(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		p.creating = false
		p.nameInput.Reset()
		p.nameInput.Blur()
		return p, nil

	case tea.KeyEnter:
		name := p.nameInput.Value()
		if name == "" {
			return p, nil
		}
		p.creating = false
		p.nameInput.Reset()
		p.nameInput.Blur()
		return p, func() tea.Msg { return SaveProfileMsg{Name: name} }
	}

	var cmd tea.Cmd
	p.nameInput, cmd = p.nameInput.Update(key)
	return p, cmd
}

// View implements tea.Model
func (p Profiles) View() string {
	var b strings.Builder
	t := p.theme

	b.WriteString(t.Title.Render("Profiles") + "\n")

	if p.creating {
		b.WriteString(t.Info.Render("Save the active mods as:") + "\n")
		b.WriteString(p.nameInput.View() + "\n\n")
		b.WriteString(t.Help.Render("enter: save  esc: cancel"))
		return b.String()
	}

	if len(p.profiles) == 0 {
		b.WriteString(t.Item.Render("No profiles yet.") + "\n")
	}
	for i, profile := range p.profiles {
		selected := i == p.cur.selected
		style := t.Item
		if selected {
			style = t.Selected
		}
		marker := ""
		if profile.Name == p.activeProfile {
			marker = " " + t.Value.Render("(active)")
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s  %d mods", cursorMark(selected), profile.Name, len(profile.Mods))) + marker + "\n")
		if selected && len(profile.Mods) > 0 {
			b.WriteString(t.Detail.Render(strings.Join(profile.Mods, ", ")) + "\n")
		}
	}

	if p.confirming {
		if profile := p.SelectedProfile(); profile != nil {
			b.WriteString("\n" + t.Error.Render(fmt.Sprintf("Delete profile %q and its mod copies? (y/N)", profile.Name)))
		}
		return b.String()
	}
	b.WriteString(t.Help.Render(p.keys.NavigationHelp() + "  enter: load  n: save current as  d: delete"))
	return b.String()
}
