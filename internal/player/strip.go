package player

import (
	"log/slog"
	"math"

	"github.com/ygelfand/vidstrip/internal/thumbnail"
)

// ShowPlaceholders replaces the strip with the fixed placeholder frames
func (p *Player) ShowPlaceholders() {
	p.mu.Lock()
	seq := p.seq
	p.mu.Unlock()
	p.showPlaceholders(seq)
}

// GenerateThumbnails restarts strip generation for the current duration
func (p *Player) GenerateThumbnails() {
	p.mu.Lock()
	seq := p.seq
	p.mu.Unlock()
	p.generate(seq)
}

func (p *Player) showPlaceholders(seq uint64) {
	p.mu.Lock()
	if p.closed || p.seq != seq {
		p.mu.Unlock()
		return
	}
	d := p.state.Duration
	p.mu.Unlock()

	entries := p.gen.Placeholders(d)
	p.commit(seq, entries)
}

func (p *Player) generate(seq uint64) {
	p.mu.Lock()
	if p.closed || p.seq != seq {
		p.mu.Unlock()
		return
	}
	if p.job != nil {
		p.job.Cancel()
		p.job = nil
	}
	d := p.state.Duration
	p.mu.Unlock()

	job := p.gen.Generate(d, func(entries []thumbnail.Entry) {
		p.commit(seq, entries)
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.seq != seq {
		job.Cancel()
		return
	}
	p.job = job
}

func (p *Player) commit(seq uint64, entries []thumbnail.Entry) {
	p.update(func(s *State) {
		if p.seq != seq {
			slog.Debug("Player: dropping stale thumbnails", "frames", len(entries))
			return
		}
		s.Thumbnails = entries
	})
}

// OnThumbnailClick pauses and jumps to a strip entry. Placeholder entries may lie
// past an unknown duration, so only the lower bound is enforced.
func (p *Player) OnThumbnailClick(t float64) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return
	}
	t = math.Max(t, 0)

	p.ops.Lock()
	defer p.ops.Unlock()

	if err := p.el.Pause(); err != nil {
		slog.Debug("Player: pause failed", "error", err)
	}
	if err := p.el.SetCurrentTime(t); err != nil {
		slog.Debug("Player: seek failed", "target", t, "error", err)
	}
	p.update(func(s *State) {
		s.CurrentTime = t
		s.Playing = false
	})
}

func (p *Player) ToggleStrip() {
	p.update(func(s *State) { s.StripVisible = !s.StripVisible })
}

func (p *Player) ToggleExpansion() {
	p.update(func(s *State) { s.StripExpanded = !s.StripExpanded })
}
