// Package media defines the playback element the player drives and an mpv-backed
// implementation of it.
package media

import (
	"context"
	"errors"
)

var (
	ErrNotConnected = errors.New("media element is not connected")
	ErrNoSource     = errors.New("media element has no source")
)

type EventType string

const (
	EventLoadStart      EventType = "loadstart"
	EventCanPlay        EventType = "canplay"
	EventLoadedMetadata EventType = "loadedmetadata"
	EventTimeUpdate     EventType = "timeupdate"
	EventError          EventType = "error"
)

type Event struct {
	Type EventType
	// Err carries the cause for EventError, if known
	Err error
}

// ReadyState mirrors HTMLMediaElement.readyState.
type ReadyState int

const (
	HaveNothing ReadyState = iota
	HaveMetadata
	HaveCurrentData
	HaveFutureData
	HaveEnoughData
)

// Element is a single playback handle. Getters return the last known value and
// never block on the backend.
type Element interface {
	Play(ctx context.Context) error
	Pause() error
	Load() error

	Src() string
	SetSrc(src string)
	CrossOrigin() string
	SetCrossOrigin(mode string)

	CurrentTime() float64
	SetCurrentTime(seconds float64) error
	Duration() float64
	Paused() bool
	Ended() bool

	Volume() float64
	SetVolume(level float64) error
	Muted() bool
	SetMuted(muted bool) error
	PlaybackRate() float64
	SetPlaybackRate(rate float64) error

	ReadyState() ReadyState
	Events() <-chan Event
	Close() error
}
