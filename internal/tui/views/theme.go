// Package views holds the screens of the interactive session. Views only
// render state and turn keys into messages; the app performs the work.
package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the set of styles every view renders with
type Theme struct {
	Dark bool

	Title     lipgloss.Style
	Info      lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Detail    lipgloss.Style
	Value     lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
}

type palette struct {
	accent, title, muted, value, err, ok lipgloss.Color
}

var (
	darkPalette = palette{
		accent: "205",
		title:  "69",
		muted:  "241",
		value:  "82",
		err:    "196",
		ok:     "42",
	}
	lightPalette = palette{
		accent: "162",
		title:  "25",
		muted:  "244",
		value:  "28",
		err:    "160",
		ok:     "28",
	}
)

// NewTheme returns the dark or light theme
func NewTheme(dark bool) Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return Theme{
		Dark:      dark,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.title).MarginBottom(1),
		Info:      lipgloss.NewStyle().Foreground(p.muted),
		Item:      lipgloss.NewStyle().PaddingLeft(2),
		Selected:  lipgloss.NewStyle().PaddingLeft(2).Foreground(p.accent).Bold(true),
		Detail:    lipgloss.NewStyle().Foreground(p.muted).PaddingLeft(4),
		Value:     lipgloss.NewStyle().Foreground(p.value),
		Help:      lipgloss.NewStyle().Foreground(p.muted).MarginTop(1),
		Error:     lipgloss.NewStyle().Foreground(p.err),
		Success:   lipgloss.NewStyle().Foreground(p.ok),
		Tab:       lipgloss.NewStyle().Foreground(p.muted),
		ActiveTab: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
	}
}
