// Package mediatest provides an in-memory media.Element for tests.
package mediatest

import (
	"context"
	"sync"

	"github.com/ygelfand/vidstrip/internal/media"
)

// Element records every call and lets tests script element state.
type Element struct {
	mu sync.Mutex

	src         string
	crossOrigin string
	currentTime float64
	duration    float64
	paused      bool
	ended       bool
	volume      float64
	muted       bool
	rate        float64
	ready       media.ReadyState
	closed      bool

	PlayErr error
	LoadErr error

	Loads  int
	Plays  int
	Pauses int

	events chan media.Event
}

var _ media.Element = (*Element)(nil)

func New() *Element {
	return &Element{
		paused: true,
		volume: 1,
		rate:   1,
		ready:  media.HaveEnoughData,
		events: make(chan media.Event, 16),
	}
}

// Emit queues an event for Events consumers
func (e *Element) Emit(t media.EventType) {
	e.events <- media.Event{Type: t}
}

func (e *Element) SetDuration(d float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.duration = d
}

func (e *Element) SetEnded(ended bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ended = ended
}

func (e *Element) SetReadyState(rs media.ReadyState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ready = rs
}

// Advance moves the playhead as playback would
func (e *Element) Advance(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentTime += seconds
}

func (e *Element) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Element) Play(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Plays++
	if e.PlayErr != nil {
		return e.PlayErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.ended {
		e.currentTime = 0
		e.ended = false
	}
	e.paused = false
	return nil
}

func (e *Element) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Pauses++
	e.paused = true
	return nil
}

func (e *Element) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Loads++
	if e.LoadErr != nil {
		return e.LoadErr
	}
	e.currentTime = 0
	e.paused = true
	e.ended = false
	return nil
}

func (e *Element) Src() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

func (e *Element) SetSrc(src string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.src = src
}

func (e *Element) CrossOrigin() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.crossOrigin
}

func (e *Element) SetCrossOrigin(mode string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.crossOrigin = mode
}

func (e *Element) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTime
}

func (e *Element) SetCurrentTime(seconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentTime = seconds
	return nil
}

func (e *Element) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *Element) Ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ended
}

func (e *Element) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Element) SetVolume(level float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = level
	return nil
}

func (e *Element) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

func (e *Element) SetMuted(muted bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
	return nil
}

func (e *Element) PlaybackRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

func (e *Element) SetPlaybackRate(rate float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rate = rate
	return nil
}

func (e *Element) ReadyState() media.ReadyState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

func (e *Element) Events() <-chan media.Event { return e.events }

func (e *Element) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
