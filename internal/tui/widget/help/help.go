package help

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/ui"
)

type Model struct {
	keys   []ui.HelpKey
	theme  tint.Tint
	width  int
	height int
}

func New(keys []ui.HelpKey, t tint.Tint) *Model {
	return &Model{keys: keys, theme: t}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			return nil, nil
		}
	}
	return m, nil
}

func (m *Model) View() string {
	accent := theme.Accent(m.theme)
	keyStyle := lipgloss.NewStyle().Foreground(m.theme.BrightCyan()).Bold(true).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.White())

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(" CONTROLS "))
	sb.WriteString("\n\n")
	for _, k := range m.keys {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(k.Key), descStyle.Render(k.Desc)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.BrightBlack()).Render(" Press esc, q, or ? to close "))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Background(m.theme.Bg()).
		Padding(1, 2).
		Width(max(m.width/2, 45)).
		Render(sb.String())
}
