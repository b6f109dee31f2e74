package media

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/dexterlb/mpvipc"
	"github.com/ygelfand/vidstrip/internal/config"
)

// observed property ids
const (
	propTimePos = iota + 1
	propPause
	propDuration
	propVolume
	propMute
	propSpeed
	propEOF
)

var observed = map[int]string{
	propTimePos:  "time-pos",
	propPause:    "pause",
	propDuration: "duration",
	propVolume:   "volume",
	propMute:     "mute",
	propSpeed:    "speed",
	propEOF:      "eof-reached",
}

// MPV is an Element backed by an mpv process controlled over its JSON IPC socket.
// mpv is spawned lazily on the first Load.
type MPV struct {
	mu         sync.Mutex
	conn       *mpvipc.Connection
	proc       *exec.Cmd
	socketPath string
	binary     string
	extraArgs  []string
	stopChan   chan struct{}
	events     chan Event

	src         string
	crossOrigin string
	props       properties
}

type MPVOption func(*MPV)

// WithBinary overrides the mpv executable
func WithBinary(path string) MPVOption {
	return func(m *MPV) {
		if path != "" {
			m.binary = path
		}
	}
}

// WithArgs appends extra command line arguments for spawned mpv processes
func WithArgs(args ...string) MPVOption {
	return func(m *MPV) {
		m.extraArgs = append(m.extraArgs, args...)
	}
}

func NewMPV(socketPath string, opts ...MPVOption) *MPV {
	if runtime.GOOS == "windows" {
		socketPath = `\\.\pipe\vidstrip-mpv`
	} else {
		_ = os.MkdirAll(filepath.Dir(socketPath), 0o755)
	}
	m := &MPV{
		socketPath: socketPath,
		binary:     "mpv",
		events:     make(chan Event, 64),
		props:      newProperties(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MPV) Events() <-chan Event { return m.events }

func (m *MPV) Src() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.src
}

func (m *MPV) SetSrc(src string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.src = src
}

func (m *MPV) CrossOrigin() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.crossOrigin
}

// SetCrossOrigin records the mode. mpv never attaches browser credentials, so every
// mode behaves like "anonymous".
func (m *MPV) SetCrossOrigin(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.crossOrigin = mode
}

func (m *MPV) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props.timePos
}

func (m *MPV) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props.duration
}

func (m *MPV) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props.paused
}

func (m *MPV) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props.eof
}

func (m *MPV) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props.volume
}

func (m *MPV) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props.muted
}

func (m *MPV) PlaybackRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props.speed
}

func (m *MPV) ReadyState() ReadyState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props.ready
}

// Load opens the current source paused, spawning mpv if needed. An empty source
// stops playback and drops whatever mpv has buffered.
func (m *MPV) Load() error {
	m.mu.Lock()
	src := m.src
	m.props.reset()
	m.mu.Unlock()

	if src == "" {
		if m.connection() == nil {
			return nil
		}
		_, err := m.call("stop")
		return err
	}

	if err := m.ensureOpen(context.Background()); err != nil {
		return err
	}

	slog.Debug("MPV: sending loadfile", "url", src)
	if _, err := m.call("set_property", "pause", true); err != nil {
		return fmt.Errorf("failed to pause before load: %w", err)
	}
	if _, err := m.call("loadfile", src, "replace"); err != nil {
		return fmt.Errorf("failed to load %s: %w", src, err)
	}
	return nil
}

func (m *MPV) Play(ctx context.Context) error {
	if m.Src() == "" {
		return ErrNoSource
	}
	if m.connection() == nil {
		return ErrNotConnected
	}

	if m.Ended() {
		if _, err := m.callContext(ctx, "seek", 0, "absolute"); err != nil {
			return fmt.Errorf("failed to rewind: %w", err)
		}
	}
	if _, err := m.callContext(ctx, "set_property", "pause", false); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	m.mu.Lock()
	m.props.paused = false
	m.props.eof = false
	m.mu.Unlock()
	return nil
}

func (m *MPV) Pause() error {
	m.mu.Lock()
	m.props.paused = true
	m.mu.Unlock()

	if m.connection() == nil {
		return nil
	}
	_, err := m.call("set_property", "pause", true)
	return err
}

func (m *MPV) SetCurrentTime(seconds float64) error {
	m.mu.Lock()
	m.props.timePos = seconds
	m.props.eof = false
	m.mu.Unlock()

	if m.connection() == nil {
		return nil
	}
	_, err := m.call("seek", seconds, "absolute")
	return err
}

func (m *MPV) SetVolume(level float64) error {
	m.mu.Lock()
	m.props.volume = level
	m.mu.Unlock()

	if m.connection() == nil {
		return nil
	}
	_, err := m.call("set_property", "volume", toMpvVolume(level))
	return err
}

func (m *MPV) SetMuted(muted bool) error {
	m.mu.Lock()
	m.props.muted = muted
	m.mu.Unlock()

	if m.connection() == nil {
		return nil
	}
	_, err := m.call("set_property", "mute", muted)
	return err
}

func (m *MPV) SetPlaybackRate(rate float64) error {
	m.mu.Lock()
	m.props.speed = rate
	m.mu.Unlock()

	if m.connection() == nil {
		return nil
	}
	_, err := m.call("set_property", "speed", rate)
	return err
}

// Close quits mpv and releases the IPC socket
func (m *MPV) Close() error {
	if c := m.connection(); c != nil {
		_, _ = c.Call("quit")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupLocked()
	return nil
}

// Internal Helpers

func (m *MPV) connection() *mpvipc.Connection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

func (m *MPV) call(args ...interface{}) (interface{}, error) {
	c := m.connection()
	if c == nil {
		return nil, ErrNotConnected
	}
	return c.Call(args...)
}

func (m *MPV) callContext(ctx context.Context, args ...interface{}) (interface{}, error) {
	c := m.connection()
	if c == nil {
		return nil, ErrNotConnected
	}

	type result struct {
		val interface{}
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := c.Call(args...)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func verifyConnection(c *mpvipc.Connection) bool {
	// Try to get a basic property with a short timeout to ensure mpv is "real"
	done := make(chan bool, 1)
	go func() {
		_, err := c.Call("get_property", "mpv-version")
		done <- err == nil
	}()

	select {
	case ok := <-done:
		return ok
	case <-time.After(200 * time.Millisecond):
		slog.Debug("MPV: connection check timed out")
		return false
	}
}

func (m *MPV) ensureOpen(ctx context.Context) error {
	if c := m.connection(); c != nil {
		if verifyConnection(c) {
			return nil
		}
		slog.Debug("MPV: cleaning up non-responsive connection")
		m.mu.Lock()
		m.cleanupLocked()
		m.mu.Unlock()
	}

	if _, err := exec.LookPath(m.binary); err != nil {
		return fmt.Errorf("mpv command not found. please install mpv: %w", err)
	}

	var conn *mpvipc.Connection
	if m.socketExists() {
		slog.Debug("MPV: socket exists, attempting to connect")
		c := mpvipc.NewConnection(m.socketPath)
		if err := c.Open(); err == nil && verifyConnection(c) {
			conn = c
		} else {
			slog.Debug("MPV: stale socket, removing", "error", err)
			if err == nil {
				c.Close()
			}
			os.Remove(m.socketPath)
		}
	}

	if conn == nil {
		c, err := m.spawn(ctx)
		if err != nil {
			return err
		}
		conn = c
	}

	m.mu.Lock()
	m.conn = conn
	m.stopChan = make(chan struct{})
	stop := m.stopChan
	volume, muted, speed := m.props.volume, m.props.muted, m.props.speed
	m.mu.Unlock()

	go m.monitorEvents(conn, stop)

	conn.Call("set_property", "volume", toMpvVolume(volume))
	conn.Call("set_property", "mute", muted)
	conn.Call("set_property", "speed", speed)
	return nil
}

func (m *MPV) socketExists() bool {
	if runtime.GOOS == "windows" {
		_, err := os.OpenFile(m.socketPath, os.O_RDWR, 0)
		if err != nil {
			if pe, ok := err.(*os.PathError); ok {
				if errno, ok := pe.Err.(syscall.Errno); ok {
					if errno == 2 {
						return false
					}
				}
			}
			return true
		}
		return true // Named pipes are harder to stat, let dialing handle it
	}
	_, err := os.Stat(m.socketPath)
	return err == nil
}

func (m *MPV) spawnArgs() []string {
	args := []string{
		"--idle",
		"--keep-open=yes",
		"--no-resume-playback",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
	}
	return append(args, m.extraArgs...)
}

func (m *MPV) spawn(ctx context.Context) (*mpvipc.Connection, error) {
	args := m.spawnArgs()
	slog.Debug("MPV: spawning", "binary", m.binary, "args", args)
	cmd := exec.Command(m.binary, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %w", err)
	}
	go cmd.Wait()

	m.mu.Lock()
	m.proc = cmd
	m.mu.Unlock()

	// Wait for socket to appear and respond to IPC
	for i := 0; i < 50; i++ {
		if m.socketExists() {
			c := mpvipc.NewConnection(m.socketPath)
			if err := c.Open(); err == nil {
				if verifyConnection(c) {
					return c, nil
				}
				c.Close()
			}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("failed to connect to mpv IPC after spawning")
}

func (m *MPV) setupObservers(c *mpvipc.Connection) {
	for id, name := range observed {
		c.Call("observe_property", id, name)
	}
}

func (m *MPV) monitorEvents(c *mpvipc.Connection, stop chan struct{}) {
	m.setupObservers(c)
	events := make(chan *mpvipc.Event)
	listenStop := make(chan struct{})

	go c.ListenForEvents(events, listenStop)

	defer func() {
		m.mu.Lock()
		if m.conn == c {
			m.cleanupLocked()
		}
		m.mu.Unlock()
	}()

	for {
		select {
		case <-stop:
			close(listenStop)
			return
		case ev, ok := <-events:
			if !ok || ev.Name == "shutdown" {
				slog.Debug("MPV: shutdown detected")
				return
			}
			slog.Log(context.Background(), config.LevelTrace, "MPV: event", "name", ev.Name, "id", ev.ID, "data", ev.Data)

			m.mu.Lock()
			out := m.props.apply(ev)
			m.mu.Unlock()

			for _, e := range out {
				select {
				case m.events <- e:
				case <-stop:
					close(listenStop)
					return
				}
			}
		}
	}
}

func (m *MPV) cleanupLocked() {
	if m.stopChan != nil {
		select {
		case <-m.stopChan:
		default:
			close(m.stopChan)
		}
		m.stopChan = nil
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.proc = nil
	if runtime.GOOS != "windows" {
		os.Remove(m.socketPath)
	}
}

// properties is the locally mirrored mpv state
type properties struct {
	timePos  float64
	duration float64
	volume   float64
	speed    float64
	paused   bool
	muted    bool
	eof      bool
	ready    ReadyState
	metadata bool
}

func newProperties() properties {
	return properties{volume: 1, speed: 1, paused: true}
}

// reset clears per-file state while keeping user settings
func (p *properties) reset() {
	p.timePos = 0
	p.duration = 0
	p.eof = false
	p.paused = true
	p.ready = HaveNothing
	p.metadata = false
}

// apply folds an mpv event into the mirrored state and returns the element events it maps to
func (p *properties) apply(ev *mpvipc.Event) []Event {
	switch ev.Name {
	case "start-file":
		p.reset()
		return []Event{{Type: EventLoadStart}}
	case "playback-restart":
		if p.ready < HaveEnoughData {
			p.ready = HaveEnoughData
			return []Event{{Type: EventCanPlay}}
		}
	case "end-file":
		switch ev.Reason {
		case "error":
			p.ready = HaveNothing
			return []Event{{Type: EventError, Err: fmt.Errorf("mpv could not open the file")}}
		case "eof":
			p.eof = true
			return []Event{{Type: EventTimeUpdate}}
		}
	case "property-change":
		return p.applyProperty(int(ev.ID), ev.Data)
	}
	return nil
}

func (p *properties) applyProperty(id int, data interface{}) []Event {
	if data == nil {
		return nil
	}
	switch id {
	case propTimePos:
		if val, ok := data.(float64); ok {
			p.timePos = val
			return []Event{{Type: EventTimeUpdate}}
		}
	case propPause:
		if val, ok := data.(bool); ok {
			p.paused = val
			return []Event{{Type: EventTimeUpdate}}
		}
	case propDuration:
		if val, ok := data.(float64); ok {
			p.duration = val
			if !p.metadata {
				p.metadata = true
				if p.ready < HaveMetadata {
					p.ready = HaveMetadata
				}
				return []Event{{Type: EventLoadedMetadata}}
			}
		}
	case propVolume:
		if val, ok := data.(float64); ok {
			p.volume = fromMpvVolume(val)
		}
	case propMute:
		if val, ok := data.(bool); ok {
			p.muted = val
		}
	case propSpeed:
		if val, ok := data.(float64); ok {
			p.speed = val
		}
	case propEOF:
		if val, ok := data.(bool); ok {
			p.eof = val
			return []Event{{Type: EventTimeUpdate}}
		}
	}
	return nil
}

func toMpvVolume(level float64) float64 {
	return math.Round(level * 100)
}

func fromMpvVolume(v float64) float64 {
	return math.Min(math.Max(v/100, 0), 1)
}
