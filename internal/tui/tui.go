package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ygelfand/vidstrip/internal/cache"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/thumbnail"
	"github.com/ygelfand/vidstrip/internal/tui/widget/filmstrip"
	"github.com/ygelfand/vidstrip/internal/tui/widget/help"
	"github.com/ygelfand/vidstrip/internal/tui/widget/icons"
	"github.com/ygelfand/vidstrip/internal/tui/widget/settings"
	"github.com/ygelfand/vidstrip/internal/tui/widget/urlinput"
	"github.com/ygelfand/vidstrip/internal/ui"
	"go.dalton.dog/bubbleup"
)

const volumeStep = 0.1

type stateMsg struct{}

type Options struct {
	// InitialURL is loaded as soon as the program starts
	InitialURL string
	Cache      *cache.Manager
	IconType   config.IconType
	// Config backs the settings overlay and receives theme toggles; nil
	// disables both
	Config *config.Config
	// Save persists Config; nil skips saving
	Save func() error
}

type Controller struct {
	ctx    context.Context
	player *player.Player
	opts   Options

	layout    *ui.LayoutManager
	navigator *Navigator
	alert     bubbleup.AlertModel
	strip     *filmstrip.Model
	icons     icons.Set
	keys      keyMap

	state   player.State
	lastErr string
}

func NewController(ctx context.Context, p *player.Player, tc *theme.Context, opts Options) *Controller {
	alert := bubbleup.NewAlertModel(50, false, 8*time.Second).
		WithPosition(bubbleup.TopRightPosition)
	alert.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       "error",
		ForeColor: "#FF0000",
		Prefix:    "x ",
	})
	alert.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       "info",
		ForeColor: "#e5a00d",
		Prefix:    "* ",
	})

	return &Controller{
		ctx:       ctx,
		player:    p,
		opts:      opts,
		layout:    ui.NewLayout(tc),
		navigator: NewNavigator(),
		alert:     alert,
		strip:     filmstrip.New(opts.Cache),
		icons:     icons.For(opts.IconType),
		keys:      defaultKeyMap(),
		state:     p.State(),
	}
}

func (c *Controller) Init() tea.Cmd {
	cmds := []tea.Cmd{c.waitForUpdates(), c.alert.Init()}
	if c.opts.InitialURL != "" {
		cmds = append(cmds, c.load(c.opts.InitialURL))
	}
	return tea.Batch(cmds...)
}

// waitForUpdates blocks until the player reports a change
func (c *Controller) waitForUpdates() tea.Cmd {
	updates := c.player.Updates()
	ctx := c.ctx
	return func() tea.Msg {
		select {
		case <-updates:
			return stateMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// do runs a player action off the UI goroutine; the result arrives as a stateMsg
func (c *Controller) do(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (c *Controller) load(url string) tea.Cmd {
	p, ctx := c.player, c.ctx
	return func() tea.Msg {
		if err := p.LoadURL(ctx, url); err != nil {
			return err
		}
		return nil
	}
}

func (c *Controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if err, ok := msg.(error); ok {
		slog.Error("TUI error", "error", err)
		cmds = append(cmds, c.alert.NewAlertCmd("error", err.Error()))
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.layout.Update(msg.Width, msg.Height)

	case stateMsg:
		cmds = append(cmds, c.syncState(), c.waitForUpdates())
		return c, tea.Batch(cmds...)

	case filmstrip.CellRenderedMsg:
		c.strip.Update(msg)
		return c, nil

	case urlinput.LoadRequestMsg:
		return c, c.load(msg.URL)

	case ui.ThemeChangedMsg:
		return c, c.alert.NewAlertCmd("info", fmt.Sprintf("Switched to %s theme", msg.Mode))

	case settings.ChangedMsg:
		return c, c.applySettings(msg)
	}

	if navCmd, captured := c.navigator.Update(msg); captured {
		return c, navCmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		slog.Log(context.Background(), config.LevelTrace, "TUI: key press", "key", msg.String())
		if cmd, handled := c.handleKey(msg); handled {
			return c, cmd
		}
	}

	alertModel, alertCmd := c.alert.Update(msg)
	c.alert = alertModel.(bubbleup.AlertModel)
	cmds = append(cmds, alertCmd)
	return c, tea.Batch(cmds...)
}

// syncState pulls a fresh snapshot and reacts to what changed
func (c *Controller) syncState() tea.Cmd {
	prev := c.state
	c.state = c.player.State()

	var cmds []tea.Cmd
	if !slices.Equal(prev.Thumbnails, c.state.Thumbnails) {
		cmds = append(cmds, c.strip.SetEntries(c.state.Thumbnails))
	}
	if c.state.ErrorMessage != c.lastErr {
		c.lastErr = c.state.ErrorMessage
		if c.lastErr != "" {
			cmds = append(cmds, c.alert.NewAlertCmd("error", c.lastErr))
		}
	}
	return tea.Batch(cmds...)
}

func (c *Controller) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	p, s := c.player, c.state

	switch {
	case key.Matches(msg, c.keys.Quit):
		return func() tea.Msg {
			if err := p.Close(); err != nil {
				slog.Warn("TUI: closing player", "error", err)
			}
			return tea.Quit()
		}, true
	case key.Matches(msg, c.keys.Help):
		return c.navigator.Push(help.New(c.keys.HelpKeys(), c.layout.Theme())), true
	case key.Matches(msg, c.keys.Settings):
		if c.opts.Config == nil {
			return nil, true
		}
		return c.navigator.Push(settings.New(c.opts.Config, c.opts.Save, c.layout.Theme())), true
	case key.Matches(msg, c.keys.Open):
		return c.navigator.Push(urlinput.New(s.VideoURL, c.layout.Theme())), true
	case key.Matches(msg, c.keys.PlayPause):
		ctx := c.ctx
		return c.do(func() { p.TogglePlay(ctx) }), true
	case key.Matches(msg, c.keys.Back):
		return c.do(p.SkipBackward), true
	case key.Matches(msg, c.keys.Forward):
		return c.do(p.SkipForward), true
	case key.Matches(msg, c.keys.Slower):
		return c.do(func() { p.CycleSpeed(-1) }), true
	case key.Matches(msg, c.keys.Faster):
		return c.do(func() { p.CycleSpeed(1) }), true
	case key.Matches(msg, c.keys.VolumeUp):
		return c.do(func() { p.SetVolume(s.Volume + volumeStep) }), true
	case key.Matches(msg, c.keys.VolumeDown):
		return c.do(func() { p.SetVolume(s.Volume - volumeStep) }), true
	case key.Matches(msg, c.keys.Mute):
		return c.do(p.ToggleMute), true
	case key.Matches(msg, c.keys.Strip):
		p.ToggleStrip()
		return nil, true
	case key.Matches(msg, c.keys.Expand):
		p.ToggleExpansion()
		return nil, true
	case key.Matches(msg, c.keys.Regenerate):
		return c.do(p.GenerateThumbnails), true
	case key.Matches(msg, c.keys.Thumbnail):
		idx := int(msg.Runes[0] - '1')
		if idx < 0 || idx >= len(s.Thumbnails) {
			return nil, true
		}
		at := s.Thumbnails[idx].Time
		return c.do(func() { p.OnThumbnailClick(at) }), true
	case key.Matches(msg, c.keys.Theme):
		return c.toggleTheme(), true
	}
	return nil, false
}

func (c *Controller) toggleTheme() tea.Cmd {
	tc := c.layout.ThemeContext()
	mode := tc.Toggle()
	t := tc.Tint()
	cfg, save := c.opts.Config, c.opts.Save
	if cfg != nil {
		cfg.Theme = mode.String()
	}
	return func() tea.Msg {
		if cfg != nil && save != nil {
			if err := save(); err != nil {
				return fmt.Errorf("saving theme: %w", err)
			}
		}
		return ui.ThemeChangedMsg{Mode: mode, Tint: t}
	}
}

// applySettings brings live state in line with an edited setting
func (c *Controller) applySettings(msg settings.ChangedMsg) tea.Cmd {
	if msg.Err != nil {
		return c.alert.NewAlertCmd("error", "saving settings: "+msg.Err.Error())
	}
	switch msg.Setting {
	case "theme":
		mode, err := theme.ParseMode(msg.Config.Theme)
		if err != nil {
			return c.alert.NewAlertCmd("error", err.Error())
		}
		tc := c.layout.ThemeContext()
		tc.SetDark(mode == theme.Dark)
		t := tc.Tint()
		return func() tea.Msg { return ui.ThemeChangedMsg{Mode: mode, Tint: t} }
	case "icon_type":
		c.icons = icons.For(msg.Config.IconType)
	case "cache":
		if c.opts.Cache != nil {
			c.opts.Cache.SetDisabled(msg.Config.NoCache)
		}
	}
	return c.alert.NewAlertCmd("info", "Settings saved")
}

func (c *Controller) View() string {
	return c.alert.Render(c.navigator.Render(c.renderBaseView()))
}

func (c *Controller) renderBaseView() string {
	if c.layout.TotalWidth() == 0 {
		return "Initializing..."
	}
	t := c.layout.Theme()
	width := c.layout.InnerWidth()

	sections := []string{c.renderPlayer(width)}
	if c.state.HasError() {
		sections = append(sections, ui.ErrorStyle(t).Render(c.icons.Error+" "+c.state.ErrorMessage))
	}
	if c.state.StripVisible {
		cols := c.layout.StripColumns(thumbnail.Count)
		sections = append(sections, "", c.strip.View(t, cols, c.state.CurrentTime, c.state.StripExpanded))
	}

	window := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(t.BrightBlack()).
		Padding(0, 1).
		Width(width).
		Height(max(c.layout.TotalHeight()-3, 0))

	footer := lipgloss.NewStyle().
		Width(c.layout.TotalWidth()).
		Background(t.BrightBlack()).
		Foreground(t.BrightWhite()).
		Padding(0, 1).
		Render(" space: play | ←/→: skip | [/]: speed | +/-: volume | 1-6: jump | o: open | t: theme | s: settings | ?: help | q: quit ")

	return lipgloss.JoinVertical(lipgloss.Left, window.Render(lipgloss.JoinVertical(lipgloss.Left, sections...)), footer)
}

func (c *Controller) renderPlayer(width int) string {
	t := c.layout.Theme()
	s := c.state
	accent := theme.Accent(t)

	status := c.icons.Pause + " PAUSED "
	if s.Playing {
		status = c.icons.Play + " PLAYING"
	}
	if s.Loading {
		status = c.icons.Loading + " LOADING"
	}

	barWidth := max(width-48, 10)
	filled := min(int(float64(barWidth)*s.Position()/100), barWidth)
	bar := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.BrightBlack()).Render(strings.Repeat("░", barWidth-filled))

	volume := fmt.Sprintf("%s %3d%%", c.icons.Volume, int(s.Volume*100+0.5))
	if s.Muted {
		volume = c.icons.Muted + " muted"
	}
	speed := c.icons.Speed + " " + strconv.FormatFloat(s.PlaybackRate, 'g', -1, 64) + "x"

	title := s.VideoURL
	if title == "" {
		title = "No video loaded (press o)"
	}
	titleLine := lipgloss.NewStyle().Foreground(t.BrightYellow()).Bold(true).Render(ui.Ellipsis(title, max(width-4, 4)))

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Foreground(t.BrightCyan()).Width(12).Render(status),
		bar,
		lipgloss.NewStyle().Width(18).Align(lipgloss.Right).Render(s.CurrentTimeLabel()+" / "+s.DurationLabel()),
		lipgloss.NewStyle().Width(9).Align(lipgloss.Right).Render(speed),
		lipgloss.NewStyle().Width(11).Align(lipgloss.Right).Render(volume),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(accent).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, titleLine, row))
}
