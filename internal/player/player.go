// Package player is the playback controller. It drives a single media.Element,
// mirrors the element into an observable State and owns the thumbnail strip.
package player

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ygelfand/vidstrip/internal/media"
	"github.com/ygelfand/vidstrip/internal/schedule"
	"github.com/ygelfand/vidstrip/internal/thumbnail"
)

const (
	SkipStep         = 10.0
	DefaultVolume    = 0.5
	CrossOrigin      = "anonymous"
	PlaceholderDelay = 100 * time.Millisecond
	MetadataDelay    = 1000 * time.Millisecond
)

// User-facing error messages
const (
	MsgLoadFailed = "Failed to load video. Please check the URL and try again."
	MsgPlayFailed = "Failed to play video. Please check if the video format is supported."
	MsgLoadError  = "An error occurred while loading the video."
)

var ErrClosed = errors.New("player is closed")

var SpeedOptions = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

// Player serialises element commands on ops and guards state with mu. mu is
// never held across an element command or a call into the generator.
type Player struct {
	ops sync.Mutex
	mu  sync.Mutex

	el     media.Element
	timers *schedule.Registry
	gen    *thumbnail.Generator

	state State
	job   *thumbnail.Job
	// seq is bumped on every load so callbacks from an older source are dropped
	seq    uint64
	closed bool

	updates chan struct{}
}

type Option func(*options)

type options struct {
	clock    clockwork.Clock
	renderer *thumbnail.Renderer
}

func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithRenderer(r *thumbnail.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

func New(el media.Element, opts ...Option) *Player {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = thumbnail.NewRenderer(uint64(time.Now().UnixNano()))
	}

	p := &Player{
		el:      el,
		timers:  schedule.NewRegistry(o.clock),
		state:   initialState(),
		updates: make(chan struct{}, 1),
	}
	p.gen = thumbnail.NewGenerator(o.renderer, p.timers, thumbnail.WithReadiness(func() bool {
		return el.ReadyState() >= media.HaveCurrentData
	}))
	return p
}

// State returns a snapshot of the current state
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

// Updates fires after state changes. Notifications coalesce, so a receiver
// should read State rather than count ticks.
func (p *Player) Updates() <-chan struct{} {
	return p.updates
}

func (p *Player) Renderer() *thumbnail.Renderer {
	return p.gen.Renderer()
}

func (p *Player) notifyLocked() {
	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func (p *Player) update(fn func(s *State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	fn(&p.state)
	p.notifyLocked()
}

// Run pumps element events into HandleEvent until ctx is done
func (p *Player) Run(ctx context.Context) {
	events := p.el.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			p.HandleEvent(ev)
		}
	}
}

// HandleEvent mirrors one element event into state
func (p *Player) HandleEvent(ev media.Event) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	switch ev.Type {
	case media.EventLoadStart:
		p.state.Loading = true
	case media.EventCanPlay:
		p.state.Loading = false
	case media.EventTimeUpdate:
		p.state.CurrentTime = finiteOrZero(p.el.CurrentTime())
		p.state.Playing = !p.el.Paused() && !p.el.Ended()
	case media.EventError:
		slog.Error("Player: media error", "url", p.state.VideoURL, "error", ev.Err)
		p.state.ErrorMessage = MsgLoadFailed
		p.state.Loading = false
	case media.EventLoadedMetadata:
		p.state.Duration = finiteOrZero(p.el.Duration())
		seq := p.seq
		slog.Debug("Player: metadata loaded", "duration", p.state.Duration)
		p.notifyLocked()
		p.mu.Unlock()

		p.showPlaceholders(seq)
		p.timers.After(MetadataDelay, func() { p.generate(seq) })
		return
	default:
		p.mu.Unlock()
		return
	}
	p.notifyLocked()
	p.mu.Unlock()
}

// Close cancels every pending timer and the thumbnail job, then empties and
// releases the element. Later calls are no-ops.
func (p *Player) Close() error {
	p.ops.Lock()
	defer p.ops.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	job := p.job
	p.job = nil
	p.mu.Unlock()

	p.timers.Close()
	if job != nil {
		job.Cancel()
	}

	if err := p.el.Pause(); err != nil {
		slog.Debug("Player: pause on close", "error", err)
	}
	p.el.SetSrc("")
	if err := p.el.Load(); err != nil {
		slog.Debug("Player: reload on close", "error", err)
	}
	slog.Debug("Player: closed")
	return p.el.Close()
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
