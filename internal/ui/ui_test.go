package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/vidstrip/internal/theme"
)

func TestEllipsis(t *testing.T) {
	assert.Equal(t, "short", Ellipsis("short", 10))
	assert.Equal(t, "Big Bu...", Ellipsis("Big Buck Bunny", 9))
	assert.Equal(t, "..", Ellipsis("Big Buck Bunny", 2))
	assert.Equal(t, "", Ellipsis("Big Buck Bunny", 0))
}

func TestOverlayCentersRows(t *testing.T) {
	base := strings.Repeat("..........\n", 4) + ".........."
	out := Overlay(base, "XX", 10, 5)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "XX")
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, 10, lipgloss.Width(lines[2]))

	assert.Equal(t, "only", Overlay("", "only", 10, 5))
}

type row struct {
	Time  float64 `json:"time" yaml:"time"`
	Label string  `json:"label" yaml:"label"`
}

func sample() OutputData {
	return OutputData{
		Title:   "Strip",
		Headers: []string{"TIME", "LABEL"},
		Rows:    [][]string{{"0", "0:00"}, {"20", "0:20"}},
		Raw:     []row{{0, "0:00"}, {20, "0:20"}},
	}
}

func TestOutputFormats(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, sample().Fprint(&buf, "json"))
	assert.JSONEq(t, `[{"time":0,"label":"0:00"},{"time":20,"label":"0:20"}]`, buf.String())

	buf.Reset()
	require.NoError(t, sample().Fprint(&buf, "yaml"))
	assert.Contains(t, buf.String(), "0:20")
	assert.Contains(t, buf.String(), "time: 20")

	buf.Reset()
	require.NoError(t, sample().Fprint(&buf, `"csv"`))
	assert.Equal(t, "TIME,LABEL\n0,0:00\n20,0:20\n", buf.String())

	buf.Reset()
	require.NoError(t, sample().Fprint(&buf, "table"))
	assert.Contains(t, buf.String(), "0:20")
}

func TestStripColumns(t *testing.T) {
	l := NewLayout(nil)
	l.Update(0, 0)
	assert.Equal(t, 1, l.StripColumns(6))

	l.Update(ThumbStepWidth*3+MainOverhead, 40)
	assert.Equal(t, 3, l.StripColumns(6))

	l.Update(400, 40)
	assert.Equal(t, 6, l.StripColumns(6))
	assert.Equal(t, 40-PlayerBarHeight-3, l.ContentHeight())
}

func TestLayoutFollowsThemeContext(t *testing.T) {
	tc := theme.NewContext(theme.Light)
	l := NewLayout(tc)
	assert.Equal(t, theme.LightTheme.ID(), l.Theme().ID())
	tc.Toggle()
	assert.Equal(t, theme.DarkTheme.ID(), l.Theme().ID())
}

func TestSelectModel(t *testing.T) {
	m := newSelectModel("Examples", []Option{
		{Title: "Sintel", Value: "a"},
		{Title: "Big Buck Bunny", Value: "b"},
	}, theme.DarkTheme)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, "b", next.(selectModel).choice)
	assert.Equal(t, "", next.View())

	q, _ := newSelectModel("x", []Option{{Title: "a", Value: "a"}}, theme.LightTheme).
		Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, "", q.(selectModel).choice)
	assert.True(t, q.(selectModel).quitting)
}
