package thumbnail

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/schedule"
	"github.com/ygelfand/vidstrip/internal/timecode"
)

const (
	Count           = 6
	TickDelay       = 500 * time.Millisecond
	placeholderStep = 10.0
)

// Entry is one frame of the strip
type Entry struct {
	Time  float64 `json:"time" yaml:"time"`
	Image string  `json:"image" yaml:"image"`
}

func (e Entry) Label() string { return timecode.Format(e.Time) }

type Scheduler interface {
	After(d time.Duration, fn func()) schedule.Handle
	Cancel(h schedule.Handle) bool
}

type Generator struct {
	renderer *Renderer
	sched    Scheduler
	ready    func() bool
}

type GeneratorOption func(*Generator)

// WithReadiness makes ticks render the loading frame while fn reports false
func WithReadiness(fn func() bool) GeneratorOption {
	return func(g *Generator) {
		g.ready = fn
	}
}

func NewGenerator(r *Renderer, sched Scheduler, opts ...GeneratorOption) *Generator {
	g := &Generator{renderer: r, sched: sched}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Renderer() *Renderer { return g.renderer }

// Interval is the spacing between generated frames for a given duration
func Interval(duration float64) float64 {
	return math.Max(1, math.Floor(duration/Count))
}

// Placeholders renders the fixed fallback strip at 0, 10, ... 50 seconds
func (g *Generator) Placeholders(duration float64) []Entry {
	entries := make([]Entry, 0, Count)
	for i := 0; i < Count; i++ {
		t := float64(i) * placeholderStep
		entries = append(entries, Entry{Time: t, Image: g.renderer.Enhanced(t, duration)})
	}
	return entries
}

// Job is one run of the generation loop
type Job struct {
	mu        sync.Mutex
	sched     Scheduler
	handle    schedule.Handle
	entries   []Entry
	cancelled bool
	done      bool
}

// Cancel stops the loop; commit will not be called afterwards
func (j *Job) Cancel() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancelled || j.done {
		return
	}
	j.cancelled = true
	if j.handle != 0 && j.sched != nil {
		j.sched.Cancel(j.handle)
	}
}

func (j *Job) Done() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.done
}

// Generate produces the strip one frame per tick and hands the complete slice to
// commit once. The first frame is rendered before Generate returns. Generate must
// not be called while holding a lock that commit acquires.
func (g *Generator) Generate(duration float64, commit func([]Entry)) *Job {
	j := &Job{sched: g.sched}
	if !(duration > 0) {
		j.done = true
		commit(g.Placeholders(0))
		return j
	}

	interval := Interval(duration)
	slog.Debug("Thumbnail: generation started", "duration", duration, "interval", interval)
	g.step(j, duration, interval, 0, commit)
	return j
}

func (g *Generator) step(j *Job, duration, interval, offset float64, commit func([]Entry)) {
	j.mu.Lock()
	if j.cancelled {
		j.mu.Unlock()
		return
	}
	j.mu.Unlock()

	entry := Entry{Time: offset, Image: g.frameAt(offset, duration)}
	slog.Log(context.Background(), config.LevelTrace, "Thumbnail: frame", "time", offset)

	j.mu.Lock()
	if j.cancelled {
		j.mu.Unlock()
		return
	}
	j.entries = append(j.entries, entry)

	next := offset + interval
	if next >= duration || len(j.entries) >= Count {
		j.done = true
		entries := j.entries
		j.mu.Unlock()
		slog.Debug("Thumbnail: generation complete", "frames", len(entries))
		commit(entries)
		return
	}

	j.handle = g.sched.After(TickDelay, func() {
		g.step(j, duration, interval, next, commit)
	})
	j.mu.Unlock()
}

func (g *Generator) frameAt(t, duration float64) string {
	if g.ready != nil && !g.ready() {
		return g.renderer.Loading()
	}
	return g.renderer.Enhanced(t, duration)
}
