package views

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Keys decides which keys move through lists. The app's KeyMap
// implements it for the configured keybinding style.
type Keys interface {
	IsUp(msg tea.KeyMsg) bool
	IsDown(msg tea.KeyMsg) bool
	IsHome(msg tea.KeyMsg) bool
	IsEnd(msg tea.KeyMsg) bool
	IsConfirm(msg tea.KeyMsg) bool
	IsCancel(msg tea.KeyMsg) bool
	IsDelete(msg tea.KeyMsg) bool
	NavigationHelp() string
}

// selection is a wrapping selection over n items
type selection struct {
	selected int
	n        int
}

// move handles navigation keys and reports whether msg was one
func (c *selection) move(keys Keys, msg tea.KeyMsg) bool {
	if c.n == 0 {
		return false
	}
	switch {
	case keys.IsUp(msg):
		c.selected--
		if c.selected < 0 {
			c.selected = c.n - 1
		}
	case keys.IsDown(msg):
		c.selected++
		if c.selected >= c.n {
			c.selected = 0
		}
	case keys.IsHome(msg):
		c.selected = 0
	case keys.IsEnd(msg):
		c.selected = c.n - 1
	default:
		return false
	}
	return true
}

// resize keeps the selection in range after the list changed
func (c *selection) resize(n int) {
	c.n = n
	if c.selected >= n {
		c.selected = n - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
}

func cursorMark(selected bool) string {
	if selected {
		return "▸ "
	}
	return "  "
}
