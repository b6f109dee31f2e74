package ui

import (
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/vidstrip/internal/theme"
)

type HelpKey struct {
	Key  string
	Desc string
}

// ThemeChangedMsg is broadcast after the light/dark mode flips
type ThemeChangedMsg struct {
	Mode theme.Mode
	Tint tint.Tint
}
