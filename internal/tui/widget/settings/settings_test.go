package settings

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/theme"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestThemeChoiceSaves(t *testing.T) {
	cfg := config.Default()
	saves := 0
	m := New(cfg, func() error { saves++; return nil }, theme.LightTheme)

	m.Update(enter) // open theme choices, light preselected
	assert.True(t, m.choosing)
	m.Update(down)
	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)

	msg := cmd().(ChangedMsg)
	assert.Equal(t, "theme", msg.Setting)
	assert.NoError(t, msg.Err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 1, saves)
	assert.False(t, m.choosing)
}

func TestToggleCache(t *testing.T) {
	t.Cleanup(viper.Reset)
	cfg := config.Default()
	cfg.ConfigPath = filepath.Join(t.TempDir(), ".vidstrip.yaml")
	m := New(cfg, cfg.Save, theme.DarkTheme)
	m.list.Select(4)

	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.True(t, cfg.NoCache)
	msg := cmd().(ChangedMsg)
	assert.Equal(t, "cache", msg.Setting)
	require.NoError(t, msg.Err)

	saved := viper.New()
	saved.SetConfigFile(cfg.ConfigPath)
	require.NoError(t, saved.ReadInConfig())
	assert.True(t, saved.GetBool("no_cache"))
}

func TestDefaultVideoChoice(t *testing.T) {
	cfg := config.Default()
	m := New(cfg, nil, theme.DarkTheme)
	m.list.Select(2)

	m.Update(enter)
	m.Update(down)
	m.Update(enter)
	assert.Equal(t, player.Examples[0].URL, cfg.DefaultURL)
}

func TestEscBacksOutThenCloses(t *testing.T) {
	m := New(config.Default(), nil, theme.DarkTheme)
	m.Update(enter)
	next, _ := m.Update(esc)
	assert.NotNil(t, next)
	assert.False(t, m.choosing)

	next, _ = m.Update(esc)
	assert.Nil(t, next)
}
