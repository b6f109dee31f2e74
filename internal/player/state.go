package player

import (
	"slices"

	"github.com/ygelfand/vidstrip/internal/thumbnail"
	"github.com/ygelfand/vidstrip/internal/timecode"
)

// State is the observable view of the player. Copies returned by Player.State
// are detached from the controller.
type State struct {
	VideoURL      string            `json:"video_url" yaml:"video_url"`
	Playing       bool              `json:"playing" yaml:"playing"`
	Duration      float64           `json:"duration" yaml:"duration"`
	CurrentTime   float64           `json:"current_time" yaml:"current_time"`
	PlaybackRate  float64           `json:"playback_rate" yaml:"playback_rate"`
	Volume        float64           `json:"volume" yaml:"volume"`
	Muted         bool              `json:"muted" yaml:"muted"`
	Loading       bool              `json:"loading" yaml:"loading"`
	ErrorMessage  string            `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	Thumbnails    []thumbnail.Entry `json:"thumbnails,omitempty" yaml:"thumbnails,omitempty"`
	StripVisible  bool              `json:"strip_visible" yaml:"strip_visible"`
	StripExpanded bool              `json:"strip_expanded" yaml:"strip_expanded"`
}

func initialState() State {
	return State{
		PlaybackRate:  1,
		Volume:        1,
		StripVisible:  true,
		StripExpanded: true,
	}
}

func (s State) HasError() bool { return s.ErrorMessage != "" }

func (s State) CurrentTimeLabel() string { return timecode.Format(s.CurrentTime) }

func (s State) DurationLabel() string { return timecode.Format(s.Duration) }

// Position is the playhead as a percentage of the duration, capped at 100
func (s State) Position() float64 {
	return timecode.Percent(s.CurrentTime, s.Duration)
}

func (s State) clone() State {
	s.Thumbnails = slices.Clone(s.Thumbnails)
	return s
}
