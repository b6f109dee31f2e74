package icons

import (
	"strings"

	"github.com/kyokomi/emoji/v2"
)

type EmojiProvider struct{}

func (EmojiProvider) Icons() Set {
	fallback := ASCIIProvider{}.Icons()
	return Set{
		Play:    code(":arrow_forward:", fallback.Play),
		Pause:   code(":pause_button:", fallback.Pause),
		Volume:  code(":speaker_high_volume:", fallback.Volume),
		Muted:   code(":mute:", fallback.Muted),
		Speed:   code(":fast_forward:", fallback.Speed),
		Loading: code(":hourglass_flowing_sand:", fallback.Loading),
		Error:   code(":warning:", fallback.Error),
		Strip:   code(":film_frames:", fallback.Strip),
	}
}

// code resolves an emoji alias, keeping fallback when the alias is unknown
func code(alias, fallback string) string {
	char := strings.TrimSpace(emoji.Sprint(alias))
	if char == "" || char == alias {
		return fallback
	}
	return char
}
