// Package theme holds the light/dark presentation mode. A Context is handed to
// whatever renders, so nothing mutates shared presentation state.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// ParseMode accepts "light" or "dark"; empty means light
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// DarkClass is the class applied to exported HTML when dark mode is on
const DarkClass = "dark-theme"

type Context struct {
	mu   sync.RWMutex
	mode Mode
}

func NewContext(mode Mode) *Context {
	return &Context{mode: mode}
}

func (c *Context) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

func (c *Context) Dark() bool {
	return c.Mode() == Dark
}

// SetDark switches to dark when next is true, light otherwise
func (c *Context) SetDark(next bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if next {
		c.mode = Dark
	} else {
		c.mode = Light
	}
}

// Toggle flips the mode and returns the new one
func (c *Context) Toggle() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == Dark {
		c.mode = Light
	} else {
		c.mode = Dark
	}
	return c.mode
}

func (c *Context) BodyClass() string {
	if c.Dark() {
		return DarkClass
	}
	return ""
}

func (c *Context) Tint() tint.Tint {
	if c.Dark() {
		return DarkTheme
	}
	return LightTheme
}

var StripOrange = lipgloss.Color("#e5a00d")

type DarkTint struct{}

func (t *DarkTint) DisplayName() string { return "Vidstrip Dark" }
func (t *DarkTint) ID() string          { return "vidstrip-dark" }
func (t *DarkTint) About() string       { return "Vidstrip dark theme" }

func (t *DarkTint) Fg() lipgloss.TerminalColor          { return lipgloss.Color("#cccccc") }
func (t *DarkTint) Bg() lipgloss.TerminalColor          { return lipgloss.Color("#1a1a1a") }
func (t *DarkTint) SelectionBg() lipgloss.TerminalColor { return lipgloss.Color("#333333") }
func (t *DarkTint) Cursor() lipgloss.TerminalColor      { return StripOrange }

func (t *DarkTint) BrightBlack() lipgloss.TerminalColor  { return lipgloss.Color("#4d4d4d") }
func (t *DarkTint) BrightBlue() lipgloss.TerminalColor   { return lipgloss.Color("#5bc0de") }
func (t *DarkTint) BrightCyan() lipgloss.TerminalColor   { return lipgloss.Color("#5bc0de") }
func (t *DarkTint) BrightGreen() lipgloss.TerminalColor  { return lipgloss.Color("#5cb85c") }
func (t *DarkTint) BrightPurple() lipgloss.TerminalColor { return lipgloss.Color("#b07cd8") }
func (t *DarkTint) BrightRed() lipgloss.TerminalColor    { return lipgloss.Color("#d9534f") }
func (t *DarkTint) BrightWhite() lipgloss.TerminalColor  { return lipgloss.Color("#ffffff") }
func (t *DarkTint) BrightYellow() lipgloss.TerminalColor { return lipgloss.Color("#f0ad4e") }

func (t *DarkTint) Black() lipgloss.TerminalColor  { return lipgloss.Color("#000000") }
func (t *DarkTint) Blue() lipgloss.TerminalColor   { return lipgloss.Color("#337ab7") }
func (t *DarkTint) Cyan() lipgloss.TerminalColor   { return lipgloss.Color("#5bc0de") }
func (t *DarkTint) Green() lipgloss.TerminalColor  { return lipgloss.Color("#5cb85c") }
func (t *DarkTint) Purple() lipgloss.TerminalColor { return lipgloss.Color("#8e5cb8") }
func (t *DarkTint) Red() lipgloss.TerminalColor    { return lipgloss.Color("#d9534f") }
func (t *DarkTint) White() lipgloss.TerminalColor  { return lipgloss.Color("#cccccc") }
func (t *DarkTint) Yellow() lipgloss.TerminalColor { return lipgloss.Color("#f0ad4e") }

// LightTint inverts the neutral ramp so "White" stays the readable body colour
type LightTint struct{}

func (t *LightTint) DisplayName() string { return "Vidstrip Light" }
func (t *LightTint) ID() string          { return "vidstrip-light" }
func (t *LightTint) About() string       { return "Vidstrip light theme" }

func (t *LightTint) Fg() lipgloss.TerminalColor          { return lipgloss.Color("#222222") }
func (t *LightTint) Bg() lipgloss.TerminalColor          { return lipgloss.Color("#fafafa") }
func (t *LightTint) SelectionBg() lipgloss.TerminalColor { return lipgloss.Color("#e0e0e0") }
func (t *LightTint) Cursor() lipgloss.TerminalColor      { return StripOrange }

func (t *LightTint) BrightBlack() lipgloss.TerminalColor  { return lipgloss.Color("#9e9e9e") }
func (t *LightTint) BrightBlue() lipgloss.TerminalColor   { return lipgloss.Color("#1565c0") }
func (t *LightTint) BrightCyan() lipgloss.TerminalColor   { return lipgloss.Color("#00838f") }
func (t *LightTint) BrightGreen() lipgloss.TerminalColor  { return lipgloss.Color("#2e7d32") }
func (t *LightTint) BrightPurple() lipgloss.TerminalColor { return lipgloss.Color("#6a1b9a") }
func (t *LightTint) BrightRed() lipgloss.TerminalColor    { return lipgloss.Color("#c62828") }
func (t *LightTint) BrightWhite() lipgloss.TerminalColor  { return lipgloss.Color("#000000") }
func (t *LightTint) BrightYellow() lipgloss.TerminalColor { return lipgloss.Color("#b26a00") }

func (t *LightTint) Black() lipgloss.TerminalColor  { return lipgloss.Color("#ffffff") }
func (t *LightTint) Blue() lipgloss.TerminalColor   { return lipgloss.Color("#1976d2") }
func (t *LightTint) Cyan() lipgloss.TerminalColor   { return lipgloss.Color("#0097a7") }
func (t *LightTint) Green() lipgloss.TerminalColor  { return lipgloss.Color("#388e3c") }
func (t *LightTint) Purple() lipgloss.TerminalColor { return lipgloss.Color("#7b1fa2") }
func (t *LightTint) Red() lipgloss.TerminalColor    { return lipgloss.Color("#d32f2f") }
func (t *LightTint) White() lipgloss.TerminalColor  { return lipgloss.Color("#333333") }
func (t *LightTint) Yellow() lipgloss.TerminalColor { return lipgloss.Color("#f57f17") }

var (
	DarkTheme  = &DarkTint{}
	LightTheme = &LightTint{}
)

// Accent returns the primary accent color for the theme
func Accent(t tint.Tint) lipgloss.TerminalColor {
	switch t.ID() {
	case DarkTheme.ID(), LightTheme.ID():
		return StripOrange
	}
	return t.BrightCyan()
}
