package ui

import (
	"sync"

	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/vidstrip/internal/theme"
)

const (
	// MainOverhead is the border and padding of the main container
	MainOverhead = 4

	// Filmstrip cell geometry. Half-block rendering gives two pixel rows per
	// terminal row, so 24x7 cells keep the 120x68 aspect.
	ThumbWidth  = 24
	ThumbHeight = 7
	ThumbBorder = 2
	ThumbGap    = 1

	// ThumbStepWidth is the horizontal footprint of one framed cell
	ThumbStepWidth = ThumbWidth + ThumbBorder + ThumbGap

	// ThumbTotalHeight is the framed image plus its timestamp row
	ThumbTotalHeight = ThumbHeight + ThumbBorder + 1

	// PlayerBarHeight covers title, progress and the status line
	PlayerBarHeight = 5
)

// LayoutManager tracks terminal geometry and the active theme for the TUI
type LayoutManager struct {
	mu          sync.RWMutex
	totalWidth  int
	totalHeight int
	theme       *theme.Context
}

func NewLayout(tc *theme.Context) *LayoutManager {
	if tc == nil {
		tc = theme.NewContext(theme.Light)
	}
	return &LayoutManager{theme: tc}
}

func (l *LayoutManager) Update(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.totalWidth = width
	l.totalHeight = height
}

func (l *LayoutManager) ThemeContext() *theme.Context {
	return l.theme
}

func (l *LayoutManager) Theme() tint.Tint {
	return l.theme.Tint()
}

func (l *LayoutManager) TotalWidth() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalWidth
}

func (l *LayoutManager) TotalHeight() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalHeight
}

// InnerWidth is the usable width inside the main container
func (l *LayoutManager) InnerWidth() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return max(l.totalWidth-MainOverhead, 0)
}

// StripColumns is how many framed cells fit side by side, between 1 and max
func (l *LayoutManager) StripColumns(maxCells int) int {
	cols := l.InnerWidth() / ThumbStepWidth
	return max(1, min(cols, maxCells))
}

// ContentHeight is the space left once the player bar and footer are drawn
func (l *LayoutManager) ContentHeight() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return max(l.totalHeight-PlayerBarHeight-3, 0)
}
