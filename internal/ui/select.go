package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/vidstrip/internal/theme"
)

var ErrNoSelection = errors.New("no selection made")

// Option is one entry offered by SelectOption
type Option struct {
	Title, Desc, Value string
}

type item struct {
	title, desc, value string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + " " + i.desc }

type itemDelegate struct {
	theme tint.Tint
}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.title)
	if i.desc != "" {
		str += MutedStyle(d.theme).Render(" (" + Ellipsis(i.desc, 60) + ")")
	}

	if index == m.Index() {
		fmt.Fprint(w, lipgloss.NewStyle().PaddingLeft(2).Foreground(theme.Accent(d.theme)).Render("> "+str))
		return
	}
	fmt.Fprint(w, lipgloss.NewStyle().PaddingLeft(4).Render(str))
}

type selectModel struct {
	list     list.Model
	choice   string
	quitting bool
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				m.choice = i.value
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.choice != "" || m.quitting {
		return ""
	}
	return "\n" + m.list.View()
}

func newSelectModel(title string, options []Option, t tint.Tint) selectModel {
	items := make([]list.Item, 0, len(options))
	for _, o := range options {
		items = append(items, item{title: o.Title, desc: o.Desc, value: o.Value})
	}
	l := list.New(items, itemDelegate{theme: t}, 80, len(options)+6)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle(t)
	return selectModel{list: l}
}

// SelectOption presents options in an inline list and returns the chosen value
func SelectOption(title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	final, err := tea.NewProgram(newSelectModel(title, options, CurrentTheme())).Run()
	if err != nil {
		return "", err
	}
	if res := final.(selectModel).choice; res != "" {
		return res, nil
	}
	return "", ErrNoSelection
}
