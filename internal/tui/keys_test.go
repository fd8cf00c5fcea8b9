package tui_test

import (
	"testing"

	"mrmm/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMap_VimMode(t *testing.T) {
	km := tui.NewKeyMap("vim")

	assert.True(t, km.IsUp(runeKey('k')))
	assert.True(t, km.IsDown(runeKey('j')))
	assert.True(t, km.IsHome(runeKey('g')))
	assert.True(t, km.IsEnd(runeKey('G')))
	assert.True(t, km.IsConfirm(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.True(t, km.IsCancel(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.True(t, km.IsQuit(runeKey('q')))
	assert.True(t, km.IsDelete(runeKey('d')))
}

func TestKeyMap_StandardMode(t *testing.T) {
	km := tui.NewKeyMap("standard")

	assert.True(t, km.IsUp(tea.KeyMsg{Type: tea.KeyUp}))
	assert.True(t, km.IsDown(tea.KeyMsg{Type: tea.KeyDown}))
	assert.True(t, km.IsHome(tea.KeyMsg{Type: tea.KeyHome}))

	assert.False(t, km.IsUp(runeKey('k')))
	assert.False(t, km.IsDown(runeKey('j')))
	assert.False(t, km.IsEnd(runeKey('G')))
}

func TestKeyMap_ArrowKeysWorkInBothModes(t *testing.T) {
	for _, mode := range []string{"vim", "standard"} {
		km := tui.NewKeyMap(mode)
		assert.True(t, km.IsUp(tea.KeyMsg{Type: tea.KeyUp}), mode)
		assert.True(t, km.IsDown(tea.KeyMsg{Type: tea.KeyDown}), mode)
	}
}

func TestKeyMap_UnknownModeFallsBackToVim(t *testing.T) {
	assert.Equal(t, tui.KeysVim, tui.NewKeyMap("").Mode())
	assert.Equal(t, tui.KeysVim, tui.NewKeyMap("emacs").Mode())
	assert.Equal(t, tui.KeysStandard, tui.NewKeyMap("standard").Mode())
}

func TestKeyMap_Help(t *testing.T) {
	assert.Contains(t, tui.NewKeyMap("vim").NavigationHelp(), "j/k")
	assert.Contains(t, tui.NewKeyMap("standard").NavigationHelp(), "↑/↓")
	assert.Contains(t, tui.NewKeyMap("vim").FullHelp(), "Toggle dark theme")
}
