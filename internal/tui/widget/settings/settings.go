// Package settings is the overlay for editing persisted preferences.
package settings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/theme"
)

// ChangedMsg is sent after a setting has been applied and saved
type ChangedMsg struct {
	Setting string
	Config  *config.Config
	Err     error
}

type settingItem struct {
	id          string
	title       string
	description string
	current     string
}

func (i settingItem) Title() string       { return i.title }
func (i settingItem) Description() string { return i.description + " (Current: " + i.current + ")" }
func (i settingItem) FilterValue() string { return i.title }

type choiceItem struct {
	id    string
	label string
}

func (i choiceItem) Title() string       { return i.label }
func (i choiceItem) Description() string { return "" }
func (i choiceItem) FilterValue() string { return i.label }

type Model struct {
	cfg     *config.Config
	save    func() error
	list    list.Model
	choices list.Model
	theme   tint.Tint

	choosing bool
	active   string
}

// New builds the overlay over cfg. save persists cfg and may be nil.
func New(cfg *config.Config, save func() error, t tint.Tint) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 68, 16)
	l.Title = "Settings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	c := list.New(nil, list.NewDefaultDelegate(), 68, 16)
	c.SetShowStatusBar(false)
	c.SetFilteringEnabled(false)
	c.SetShowHelp(false)

	m := &Model{cfg: cfg, save: save, list: l, choices: c, theme: t}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	defaultURL := m.cfg.DefaultURL
	if defaultURL == "" {
		defaultURL = "built-in"
	}
	idx := m.list.Index()
	m.list.SetItems([]list.Item{
		settingItem{id: "theme", title: "Theme", description: "Color scheme", current: m.cfg.Theme},
		settingItem{id: "icon_type", title: "Icon Mode", description: "Status icon set", current: string(m.cfg.IconType)},
		settingItem{id: "default_url", title: "Default Video", description: "Loaded on start without arguments", current: defaultURL},
		settingItem{id: "default_to_tui", title: "Default to TUI", description: "Start the player if no command given", current: fmt.Sprintf("%v", m.cfg.DefaultToTui)},
		settingItem{id: "cache", title: "Enable Cache", description: "Keep rendered strip cells on disk", current: fmt.Sprintf("%v", !m.cfg.NoCache)},
	})
	m.list.Select(idx)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		w := min(msg.Width-2, 88)
		h := min(msg.Height-10, 24)
		m.list.SetSize(w, h)
		m.choices.SetSize(w, h)
	}

	if m.choosing {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				m.choosing = false
				return m, nil
			case "enter":
				m.choosing = false
				if sel, ok := m.choices.SelectedItem().(choiceItem); ok {
					return m, m.apply(m.active, sel.id)
				}
				return m, nil
			}
		}
		m.choices, cmd = m.choices.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "s":
			return nil, nil
		case "enter":
			if item, ok := m.list.SelectedItem().(settingItem); ok {
				if toggled := m.toggle(item.id); toggled != nil {
					return m, toggled
				}
				m.prepare(item.id)
				m.choosing = true
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggle flips boolean settings; it returns nil for settings that need a choice
func (m *Model) toggle(id string) tea.Cmd {
	switch id {
	case "cache":
		m.cfg.NoCache = !m.cfg.NoCache
	case "default_to_tui":
		m.cfg.DefaultToTui = !m.cfg.DefaultToTui
	default:
		return nil
	}
	return m.commit(id)
}

func (m *Model) prepare(id string) {
	m.active = id
	var items []list.Item
	current := ""

	switch id {
	case "theme":
		m.choices.Title = "Choose Theme"
		for _, mode := range []theme.Mode{theme.Light, theme.Dark} {
			items = append(items, choiceItem{id: mode.String(), label: mode.String()})
		}
		current = m.cfg.Theme
	case "icon_type":
		m.choices.Title = "Choose Icon Mode"
		items = []list.Item{
			choiceItem{id: string(config.IconTypeASCII), label: "ASCII"},
			choiceItem{id: string(config.IconTypeEmoji), label: "Emoji"},
		}
		current = string(m.cfg.IconType)
	case "default_url":
		m.choices.Title = "Choose Default Video"
		items = append(items, choiceItem{id: "", label: "Built-in default"})
		for _, ex := range player.Examples {
			items = append(items, choiceItem{id: ex.URL, label: ex.Name})
		}
		current = m.cfg.DefaultURL
	}

	m.choices.SetItems(items)
	m.choices.Select(0)
	for i, it := range items {
		if it.(choiceItem).id == current {
			m.choices.Select(i)
			break
		}
	}
}

func (m *Model) apply(setting, value string) tea.Cmd {
	switch setting {
	case "theme":
		m.cfg.Theme = value
	case "icon_type":
		m.cfg.IconType = config.IconType(value)
	case "default_url":
		m.cfg.DefaultURL = value
	}
	return m.commit(setting)
}

func (m *Model) commit(setting string) tea.Cmd {
	m.refresh()
	var err error
	if m.save != nil {
		err = m.save()
	}
	cfg := m.cfg
	return func() tea.Msg { return ChangedMsg{Setting: setting, Config: cfg, Err: err} }
}

func (m *Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(theme.Accent(m.theme)).
		Padding(1, 2).
		Background(m.theme.Bg())

	content := m.list.View()
	if m.choosing {
		content = m.choices.View()
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		content,
		"\n [enter] change | [esc] back/close",
	))
}
