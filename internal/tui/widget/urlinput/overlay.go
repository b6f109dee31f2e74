// Package urlinput is the overlay for entering a video URL or picking one of
// the example videos.
package urlinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/sahilm/fuzzy"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/ui"
)

// LoadRequestMsg asks the controller to load URL
type LoadRequestMsg struct {
	URL string
}

type exampleItem struct {
	ex player.Example
}

func (i exampleItem) Title() string       { return i.ex.Name }
func (i exampleItem) Description() string { return i.ex.URL }
func (i exampleItem) FilterValue() string { return i.ex.Name }

type exampleSource []player.Example

func (s exampleSource) String(i int) string { return s[i].Name }
func (s exampleSource) Len() int            { return len(s) }

type Model struct {
	input  textinput.Model
	list   list.Model
	theme  tint.Tint
	width  int
	height int
}

func New(current string, t tint.Tint) *Model {
	ti := textinput.New()
	ti.Placeholder = "Paste a video URL or type an example name"
	ti.Prompt = " "
	ti.SetValue(current)
	ti.CursorEnd()
	ti.Focus()

	l := list.New(nil, list.NewDefaultDelegate(), 60, 12)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	m := &Model{input: ti, list: l, theme: t}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// isURL reports whether s looks like something mpv can open directly
func isURL(s string) bool {
	return strings.Contains(s, "://") || strings.HasPrefix(s, "/") || strings.HasPrefix(s, ".")
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(max(m.width/2, 60), max(m.height/3, 8))
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return nil, nil
		case "enter":
			url := strings.TrimSpace(m.input.Value())
			if !isURL(url) {
				if sel, ok := m.list.SelectedItem().(exampleItem); ok {
					url = sel.ex.URL
				}
			}
			if url == "" {
				return m, nil
			}
			return nil, func() tea.Msg { return LoadRequestMsg{URL: url} }
		case "up", "down", "ctrl+n", "ctrl+p":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(remap(msg))
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func remap(msg tea.KeyMsg) tea.KeyMsg {
	switch msg.String() {
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return msg
}

// refresh narrows the example list to the typed query
func (m *Model) refresh() {
	query := strings.TrimSpace(m.input.Value())
	var items []list.Item
	if query == "" || isURL(query) {
		for _, ex := range player.Examples {
			items = append(items, exampleItem{ex: ex})
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, exampleSource(player.Examples)) {
			items = append(items, exampleItem{ex: player.Examples[match.Index]})
		}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *Model) View() string {
	accent := theme.Accent(m.theme)
	title := ui.AccentStyle(m.theme).Bold(true).Render(" OPEN VIDEO ")
	hint := lipgloss.NewStyle().Foreground(m.theme.BrightBlack()).Render(" enter: load | up/down: example | esc: cancel ")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			m.input.View(),
			"",
			m.list.View(),
			hint,
		))
}
