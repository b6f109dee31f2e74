package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/ui"
)

func TestHelpListsKeys(t *testing.T) {
	m := New([]ui.HelpKey{{Key: "space", Desc: "Play/Pause"}}, theme.DarkTheme)
	v := m.View()
	assert.Contains(t, v, "space")
	assert.Contains(t, v, "Play/Pause")
}

func TestHelpDismiss(t *testing.T) {
	m := New(nil, theme.LightTheme)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Nil(t, next)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Same(t, m, next)
}
