package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ygelfand/vidstrip/internal/config"
)

func TestASCII(t *testing.T) {
	s := For(config.IconTypeASCII)
	assert.Equal(t, "▶", s.Play)
	assert.Equal(t, "⏸", s.Pause)
}

func TestEmojiResolves(t *testing.T) {
	s := For(config.IconTypeEmoji)
	for _, glyph := range []string{s.Play, s.Pause, s.Volume, s.Muted, s.Speed, s.Loading, s.Error, s.Strip} {
		assert.NotEmpty(t, glyph)
		assert.NotContains(t, glyph, ":")
	}
	assert.NotEqual(t, For(config.IconTypeASCII).Muted, s.Muted)
}

func TestUnknownAliasFallsBack(t *testing.T) {
	assert.Equal(t, "?", code(":definitely_not_an_emoji:", "?"))
}
