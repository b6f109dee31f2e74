// Package filmstrip draws the thumbnail strip as framed half-block cells.
package filmstrip

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	gopixels "github.com/saran13raj/go-pixels"
	"github.com/ygelfand/vidstrip/internal/cache"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/thumbnail"
	"github.com/ygelfand/vidstrip/internal/ui"
)

const CellTTL = 24 * time.Hour

// CellRenderedMsg carries one rendered cell back to the model
type CellRenderedMsg struct {
	Key  string
	View string
}

type Model struct {
	entries []thumbnail.Entry
	cells   map[string]string
	pending map[string]bool
	cache   *cache.Manager
	render  func(uri string) (string, error)
}

// New builds an empty strip. cm may be nil to skip the disk cache.
func New(cm *cache.Manager) *Model {
	return &Model{
		cells:   make(map[string]string),
		pending: make(map[string]bool),
		cache:   cm,
		render:  renderCell,
	}
}

func cellKey(uri string) string {
	return cache.Key("cell", cache.HashKey(uri), ui.ThumbWidth)
}

func renderCell(uri string) (string, error) {
	img, err := thumbnail.DecodeDataURI(uri)
	if err != nil {
		return "", err
	}
	return gopixels.FromImageStream(img, ui.ThumbWidth, 0, "halfcell", true)
}

func (m *Model) Entries() []thumbnail.Entry { return m.entries }

// SetEntries swaps in a new strip and returns the commands that render any
// cell not already drawn
func (m *Model) SetEntries(entries []thumbnail.Entry) tea.Cmd {
	m.entries = entries
	var cmds []tea.Cmd
	for _, e := range entries {
		if e.Image == "" {
			continue
		}
		key := cellKey(e.Image)
		if _, ok := m.cells[key]; ok || m.pending[key] {
			continue
		}
		m.pending[key] = true
		cmds = append(cmds, m.renderCmd(key, e.Image))
	}
	return tea.Batch(cmds...)
}

func (m *Model) renderCmd(key, uri string) tea.Cmd {
	cm := m.cache
	render := m.render
	return func() tea.Msg {
		if cm != nil {
			var raw []byte
			if err := cm.Get(key, &raw); err == nil {
				return CellRenderedMsg{Key: key, View: string(raw)}
			}
		}
		view, err := render(uri)
		if err != nil {
			slog.Debug("Filmstrip: render failed", "error", err)
			return CellRenderedMsg{Key: key}
		}
		if cm != nil {
			if err := cm.Set(key, []byte(view), CellTTL); err != nil {
				slog.Warn("Filmstrip: cache write failed", "error", err)
			}
		}
		return CellRenderedMsg{Key: key, View: view}
	}
}

func (m *Model) Update(msg tea.Msg) {
	if msg, ok := msg.(CellRenderedMsg); ok {
		delete(m.pending, msg.Key)
		m.cells[msg.Key] = msg.View
	}
}

// ActiveIndex is the last entry at or before current, or -1 for an empty strip
func ActiveIndex(entries []thumbnail.Entry, current float64) int {
	idx := -1
	for i, e := range entries {
		if e.Time > current {
			break
		}
		idx = i
	}
	if idx < 0 && len(entries) > 0 {
		return 0
	}
	return idx
}

// View renders up to cols cells. A collapsed strip shows the timestamps only.
func (m *Model) View(t tint.Tint, cols int, current float64, expanded bool) string {
	if len(m.entries) == 0 {
		return ui.MutedStyle(t).Render("Generating thumbnails...")
	}

	active := ActiveIndex(m.entries, current)
	accent := theme.Accent(t)
	shown := m.entries[:min(cols, len(m.entries))]

	if !expanded {
		labels := make([]string, 0, len(shown))
		for i, e := range shown {
			style := lipgloss.NewStyle().Foreground(t.White()).Padding(0, 1)
			if i == active {
				style = style.Foreground(accent).Bold(true)
			}
			labels = append(labels, style.Render(fmt.Sprintf("%d %s", i+1, e.Label())))
		}
		return strings.Join(labels, " ")
	}

	cells := make([]string, 0, len(shown))
	for i, e := range shown {
		content, ok := m.cells[cellKey(e.Image)]
		if !ok || content == "" {
			content = "\n\n" + lipgloss.NewStyle().Foreground(t.BrightBlack()).Render("...")
		}

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BrightBlack()).
			Width(ui.ThumbWidth).
			Height(ui.ThumbHeight).
			MaxHeight(ui.ThumbHeight + ui.ThumbBorder).
			Align(lipgloss.Center, lipgloss.Center)
		label := lipgloss.NewStyle().Width(ui.ThumbWidth + ui.ThumbBorder).Align(lipgloss.Center).Foreground(t.White())
		if i == active {
			box = box.BorderForeground(accent)
			label = label.Foreground(accent).Bold(true)
		}

		cell := lipgloss.JoinVertical(lipgloss.Center,
			box.Render(content),
			label.Render(fmt.Sprintf("%d  %s", i+1, e.Label())),
		)
		cells = append(cells, lipgloss.NewStyle().MarginRight(ui.ThumbGap).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
