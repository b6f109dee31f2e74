package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/tui/widget/icons"
)

func TestResolveSource(t *testing.T) {
	cfg := config.Default()

	src, err := resolveSource(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, player.DefaultURL, src)

	cfg.DefaultURL = "https://example.com/default.mp4"
	src, err = resolveSource(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultURL, src)

	src, err = resolveSource(cfg, []string{"./clip.mkv"})
	require.NoError(t, err)
	assert.Equal(t, "./clip.mkv", src)

	src, err = resolveSource(cfg, []string{"sintel"})
	require.NoError(t, err)
	assert.Equal(t, player.Examples[0].URL, src)

	_, err = resolveSource(cfg, []string{"zzzz"})
	assert.Error(t, err)
}

func TestStatusLine(t *testing.T) {
	set := icons.For(config.IconTypeASCII)
	s := player.State{Playing: true, CurrentTime: 65, Duration: 600, PlaybackRate: 1.5, Volume: 0.5}
	assert.Equal(t, "▶ 1:05 / 10:00  » 1.5x  ♪ 50%", statusLine(set, s))

	s.Playing = false
	s.Muted = true
	assert.Contains(t, statusLine(set, s), "x muted")
	assert.Contains(t, statusLine(set, s), "⏸")
}
