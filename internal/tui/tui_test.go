package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/vidstrip/internal/cache"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/media/mediatest"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/thumbnail"
	"github.com/ygelfand/vidstrip/internal/tui/widget/settings"
	"github.com/ygelfand/vidstrip/internal/ui"
)

func newController(t *testing.T, opts Options) (*Controller, *player.Player, *mediatest.Element) {
	t.Helper()
	el := mediatest.New()
	p := player.New(el, player.WithClock(clockwork.NewFakeClock()), player.WithRenderer(thumbnail.NewRenderer(3)))
	t.Cleanup(func() { _ = p.Close() })

	c := NewController(t.Context(), p, theme.NewContext(theme.Light), opts)
	c.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	return c, p, el
}

func press(c *Controller, k string) tea.Msg {
	var msg tea.KeyMsg
	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := c.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestKeysDrivePlayer(t *testing.T) {
	c, p, _ := newController(t, Options{})

	press(c, " ")
	assert.True(t, p.State().Playing)

	press(c, "m")
	assert.True(t, p.State().Muted)

	press(c, "]")
	assert.Equal(t, 1.25, p.State().PlaybackRate)

	press(c, "f")
	assert.False(t, p.State().StripVisible)
	press(c, "e")
	assert.False(t, p.State().StripExpanded)
}

func TestStateSyncRendersStatus(t *testing.T) {
	c, p, _ := newController(t, Options{})
	p.ToggleMute()

	c.Update(stateMsg{})
	v := c.View()
	assert.Contains(t, v, "muted")
	assert.Contains(t, v, "0:00 / 0:00")
	assert.Contains(t, v, "No video loaded")
}

func TestThumbnailKeySeeks(t *testing.T) {
	c, p, el := newController(t, Options{})
	p.ShowPlaceholders()
	c.Update(stateMsg{})
	require.Len(t, c.state.Thumbnails, thumbnail.Count)

	press(c, "3")
	assert.Equal(t, 20.0, p.State().CurrentTime)
	assert.True(t, el.Paused())
}

func TestThemeToggleSaves(t *testing.T) {
	cfg := config.Default()
	saves := 0
	c, _, _ := newController(t, Options{Config: cfg, Save: func() error {
		saves++
		return nil
	}})

	msg := press(c, "t")
	changed, ok := msg.(ui.ThemeChangedMsg)
	require.True(t, ok)
	assert.Equal(t, theme.Dark, changed.Mode)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 1, saves)
	assert.Equal(t, theme.DarkTheme.ID(), c.layout.Theme().ID())
}

func TestSettingsChangeAppliesTheme(t *testing.T) {
	cfg := config.Default()
	c, _, _ := newController(t, Options{Config: cfg})

	press(c, "s")
	require.NotNil(t, c.navigator.ActiveOverlay())

	cfg.Theme = "dark"
	_, cmd := c.Update(settings.ChangedMsg{Setting: "theme", Config: cfg})
	require.NotNil(t, cmd)
	assert.True(t, c.layout.ThemeContext().Dark())
	assert.IsType(t, ui.ThemeChangedMsg{}, cmd())
}

func TestSettingsCacheToggleReachesManager(t *testing.T) {
	cm, err := cache.New(t.TempDir())
	require.NoError(t, err)
	cfg := config.Default()
	c, _, _ := newController(t, Options{Config: cfg, Cache: cm})

	cfg.NoCache = true
	c.Update(settings.ChangedMsg{Setting: "cache", Config: cfg})
	assert.True(t, cm.Disabled())

	cfg.NoCache = false
	c.Update(settings.ChangedMsg{Setting: "cache", Config: cfg})
	assert.False(t, cm.Disabled())
}

func TestSettingsWithoutConfigIsIgnored(t *testing.T) {
	c, _, _ := newController(t, Options{})
	press(c, "s")
	assert.Nil(t, c.navigator.ActiveOverlay())
}

func TestOpenOverlayCapturesKeys(t *testing.T) {
	c, p, _ := newController(t, Options{})
	press(c, "o")
	require.NotNil(t, c.navigator.ActiveOverlay())

	// typed while the overlay is open, so it must not mute
	press(c, "m")
	assert.False(t, p.State().Muted)

	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, c.navigator.ActiveOverlay())
}

func TestQuitClosesPlayer(t *testing.T) {
	c, _, el := newController(t, Options{})
	msg := press(c, "q")
	assert.Equal(t, tea.Quit(), msg)
	assert.True(t, el.Closed())
}

func TestWaitForUpdatesStopsWithContext(t *testing.T) {
	el := mediatest.New()
	p := player.New(el, player.WithClock(clockwork.NewFakeClock()))
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithCancel(t.Context())
	c := NewController(ctx, p, theme.NewContext(theme.Dark), Options{})
	cancel()
	assert.Nil(t, c.waitForUpdates()())
}
