// Package icons provides the status glyphs shown in the player bar, in either
// plain terminal symbols or emoji.
package icons

import (
	"github.com/ygelfand/vidstrip/internal/config"
)

// Set is one family of player glyphs
type Set struct {
	Play    string
	Pause   string
	Volume  string
	Muted   string
	Speed   string
	Loading string
	Error   string
	Strip   string
}

// Provider yields the glyph family for an icon type
type Provider interface {
	Icons() Set
}

func ProviderFor(t config.IconType) Provider {
	switch t {
	case config.IconTypeEmoji:
		return EmojiProvider{}
	default:
		return ASCIIProvider{}
	}
}

// For returns the glyphs for the configured icon type
func For(t config.IconType) Set {
	return ProviderFor(t).Icons()
}
