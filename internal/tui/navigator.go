package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ygelfand/vidstrip/internal/ui"
)

// Overlay is a model rendered on top of the main view. Returning a nil model
// from Update dismisses it.
type Overlay interface {
	tea.Model
}

type Navigator struct {
	overlays []Overlay
	width    int
	height   int
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

func (n *Navigator) Push(o Overlay) tea.Cmd {
	n.overlays = append(n.overlays, o)
	cmds := []tea.Cmd{o.Init()}
	if n.width > 0 && n.height > 0 {
		_, cmd := o.Update(tea.WindowSizeMsg{Width: n.width, Height: n.height})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (n *Navigator) Pop() {
	if len(n.overlays) > 0 {
		n.overlays = n.overlays[:len(n.overlays)-1]
	}
}

func (n *Navigator) ActiveOverlay() Overlay {
	if len(n.overlays) == 0 {
		return nil
	}
	return n.overlays[len(n.overlays)-1]
}

// Update forwards msg to the top overlay. The bool reports whether the overlay
// consumed it; key and mouse input always is.
func (n *Navigator) Update(msg tea.Msg) (tea.Cmd, bool) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		n.width = size.Width
		n.height = size.Height
	}

	overlay := n.ActiveOverlay()
	if overlay == nil {
		return nil, false
	}

	next, cmd := overlay.Update(msg)
	if next == nil {
		n.Pop()
		return cmd, true
	}
	n.overlays[len(n.overlays)-1] = next.(Overlay)

	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		return cmd, true
	}
	return cmd, false
}

func (n *Navigator) Render(base string) string {
	for _, o := range n.overlays {
		base = ui.Overlay(base, o.View(), n.width, n.height)
	}
	return base
}
