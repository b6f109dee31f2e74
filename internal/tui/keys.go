package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/ygelfand/vidstrip/internal/ui"
)

type keyMap struct {
	PlayPause  key.Binding
	Back       key.Binding
	Forward    key.Binding
	Slower     key.Binding
	Faster     key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Mute       key.Binding
	Theme      key.Binding
	Strip      key.Binding
	Expand     key.Binding
	Regenerate key.Binding
	Thumbnail  key.Binding
	Open       key.Binding
	Settings   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause:  key.NewBinding(key.WithKeys(" ", "k"), key.WithHelp("space", "Play/Pause")),
		Back:       key.NewBinding(key.WithKeys("left", "j"), key.WithHelp("←", "Back 10s")),
		Forward:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Forward 10s")),
		Slower:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "Slower")),
		Faster:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "Faster")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "=", "up"), key.WithHelp("+", "Volume up")),
		VolumeDown: key.NewBinding(key.WithKeys("-", "down"), key.WithHelp("-", "Volume down")),
		Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Mute")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Light/Dark theme")),
		Strip:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "Show/hide strip")),
		Expand:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "Expand/collapse strip")),
		Regenerate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "Regenerate strip")),
		Thumbnail:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "Jump to thumbnail")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "Open URL")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Settings")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
	}
}

func (k keyMap) HelpKeys() []ui.HelpKey {
	bindings := []key.Binding{
		k.PlayPause, k.Back, k.Forward, k.Slower, k.Faster, k.VolumeUp, k.VolumeDown,
		k.Mute, k.Thumbnail, k.Strip, k.Expand, k.Regenerate, k.Theme, k.Open, k.Settings, k.Help, k.Quit,
	}
	keys := make([]ui.HelpKey, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		keys = append(keys, ui.HelpKey{Key: h.Key, Desc: h.Desc})
	}
	return keys
}
