package urlinput

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/theme"
)

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestEnterLoadsTypedURL(t *testing.T) {
	var m tea.Model = New("", theme.DarkTheme)
	m = typeText(m, "https://example.com/a.mp4")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, next)
	require.NotNil(t, cmd)
	assert.Equal(t, LoadRequestMsg{URL: "https://example.com/a.mp4"}, cmd())
}

func TestEnterPicksFuzzyExample(t *testing.T) {
	var m tea.Model = New("", theme.DarkTheme)
	m = typeText(m, "tears")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, LoadRequestMsg{URL: player.Examples[2].URL}, cmd())
}

func TestArrowSelectsExample(t *testing.T) {
	var m tea.Model = New("", theme.LightTheme)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, LoadRequestMsg{URL: player.Examples[1].URL}, cmd())
}

func TestEscDismisses(t *testing.T) {
	next, cmd := New("x", theme.DarkTheme).Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, next)
	assert.Nil(t, cmd)
}

func TestViewShowsExamples(t *testing.T) {
	v := New("", theme.DarkTheme).View()
	assert.Contains(t, v, "OPEN VIDEO")
	assert.Contains(t, v, "Sintel")
}
