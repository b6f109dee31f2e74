package player

import (
	"context"
	"log/slog"
	"math"
)

// LoadURL replaces the source and starts playback. Media failures are reported
// through State.ErrorMessage; the only error returned is ErrClosed.
func (p *Player) LoadURL(ctx context.Context, url string) error {
	p.ops.Lock()
	defer p.ops.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.seq++
	seq := p.seq
	if p.job != nil {
		p.job.Cancel()
		p.job = nil
	}
	p.state.ErrorMessage = ""
	p.state.VideoURL = url
	p.state.Playing = false
	p.state.CurrentTime = 0
	p.state.Duration = 0
	p.state.Thumbnails = nil
	p.notifyLocked()
	p.mu.Unlock()

	slog.Info("Player: loading video", "url", url)
	if err := p.el.Pause(); err != nil {
		slog.Debug("Player: pause before load", "error", err)
	}
	p.el.SetSrc(url)
	p.el.SetCrossOrigin(CrossOrigin)
	if err := p.el.Load(); err != nil {
		slog.Error("Player: load failed", "url", url, "error", err)
		p.fail(seq, MsgLoadError)
		return nil
	}

	if err := p.el.Play(ctx); err != nil {
		slog.Warn("Player: playback rejected", "url", url, "error", err)
		p.fail(seq, MsgPlayFailed)
	}

	p.timers.After(PlaceholderDelay, func() { p.showPlaceholders(seq) })
	return nil
}

// LoadExample loads a built-in example video by name
func (p *Player) LoadExample(ctx context.Context, name string) (Example, error) {
	ex, err := FindExample(name)
	if err != nil {
		return Example{}, err
	}
	return ex, p.LoadURL(ctx, ex.URL)
}

func (p *Player) fail(seq uint64, msg string) {
	p.update(func(s *State) {
		if p.seq != seq {
			return
		}
		s.ErrorMessage = msg
		s.Loading = false
	})
}

// TogglePlay resumes a paused or ended element, otherwise pauses it. A rejected
// resume leaves the state untouched.
func (p *Player) TogglePlay(ctx context.Context) {
	p.ops.Lock()
	defer p.ops.Unlock()

	if p.el.Paused() || p.el.Ended() {
		if err := p.el.Play(ctx); err != nil {
			slog.Debug("Player: play ignored", "error", err)
			return
		}
		p.update(func(s *State) { s.Playing = true })
		return
	}

	if err := p.el.Pause(); err != nil {
		slog.Debug("Player: pause failed", "error", err)
	}
	p.update(func(s *State) { s.Playing = false })
}

// Seek moves the playhead to target clamped to [0, duration]
func (p *Player) Seek(target float64) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return
	}
	p.ops.Lock()
	defer p.ops.Unlock()
	p.seekLocked(target)
}

func (p *Player) SkipBackward() {
	p.ops.Lock()
	defer p.ops.Unlock()
	p.seekLocked(p.el.CurrentTime() - SkipStep)
}

func (p *Player) SkipForward() {
	p.ops.Lock()
	defer p.ops.Unlock()
	p.seekLocked(p.el.CurrentTime() + SkipStep)
}

// seekLocked requires ops
func (p *Player) seekLocked(target float64) {
	p.mu.Lock()
	d := p.state.Duration
	p.mu.Unlock()

	t := clamp(target, 0, d)
	if err := p.el.SetCurrentTime(t); err != nil {
		slog.Debug("Player: seek failed", "target", t, "error", err)
	}
	p.update(func(s *State) { s.CurrentTime = t })
}

// SetSpeed applies a playback rate. Non-finite or non-positive rates are ignored.
func (p *Player) SetSpeed(rate float64) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return
	}
	p.ops.Lock()
	defer p.ops.Unlock()

	if err := p.el.SetPlaybackRate(rate); err != nil {
		slog.Debug("Player: set speed failed", "rate", rate, "error", err)
	}
	p.update(func(s *State) { s.PlaybackRate = rate })
}

// CycleSpeed steps through SpeedOptions from the nearest option to the current
// rate, stopping at either end. It returns the applied rate.
func (p *Player) CycleSpeed(dir int) float64 {
	current := p.State().PlaybackRate
	idx := 0
	for i, opt := range SpeedOptions {
		if math.Abs(opt-current) < math.Abs(SpeedOptions[idx]-current) {
			idx = i
		}
	}
	switch {
	case dir > 0 && idx < len(SpeedOptions)-1:
		idx++
	case dir < 0 && idx > 0:
		idx--
	}
	p.SetSpeed(SpeedOptions[idx])
	return SpeedOptions[idx]
}

// SetVolume applies level clamped to [0,1]. Zero engages mute and any level
// above zero releases it.
func (p *Player) SetVolume(level float64) {
	if math.IsNaN(level) {
		return
	}
	level = clamp(level, 0, 1)

	p.ops.Lock()
	defer p.ops.Unlock()

	if err := p.el.SetVolume(level); err != nil {
		slog.Debug("Player: set volume failed", "level", level, "error", err)
	}
	muted := p.State().Muted
	switch {
	case level == 0:
		p.setMuted(true)
		muted = true
	case muted:
		p.setMuted(false)
		muted = false
	}
	p.update(func(s *State) {
		s.Volume = level
		s.Muted = muted
	})
}

// ToggleMute zeroes the volume when muting and restores DefaultVolume when
// unmuting. The level before muting is not remembered.
func (p *Player) ToggleMute() {
	p.ops.Lock()
	defer p.ops.Unlock()

	next := !p.State().Muted
	level := DefaultVolume
	if next {
		level = 0
	}
	if err := p.el.SetVolume(level); err != nil {
		slog.Debug("Player: set volume failed", "level", level, "error", err)
	}
	p.setMuted(next)
	p.update(func(s *State) {
		s.Volume = level
		s.Muted = next
	})
}

func (p *Player) setMuted(muted bool) {
	if err := p.el.SetMuted(muted); err != nil {
		slog.Debug("Player: set mute failed", "muted", muted, "error", err)
	}
}
