// Package cache is a small TTL'd key/value store on disk. It holds rendered
// filmstrip cells and generated strips so repeat runs do not redraw them.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/peterbourgon/diskv"
	"github.com/ygelfand/vidstrip/internal/config"
)

var (
	ErrDisabled = errors.New("caching is disabled")
	ErrExpired  = errors.New("cache entry expired")
)

type Entry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt int64           `json:"expires_at"` // unix seconds, 0 never expires
}

type Manager struct {
	dv       *diskv.Diskv
	clock    clockwork.Clock
	disabled atomic.Bool
}

type Option func(*Manager)

// Disabled turns every read into a miss and every write into a no-op
func Disabled(off bool) Option {
	return func(m *Manager) { m.disabled.Store(off) }
}

func WithClock(c clockwork.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// SetDisabled switches caching off or back on for a live manager
func (m *Manager) SetDisabled(off bool) {
	m.disabled.Store(off)
}

func (m *Manager) Disabled() bool {
	return m.disabled.Load()
}

func New(path string, opts ...Option) (*Manager, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	m := &Manager{
		dv: diskv.New(diskv.Options{
			BasePath:     path,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 4 * 1024 * 1024,
		}),
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

var (
	globalMu sync.Mutex
	global   *Manager
)

// Get returns the process-wide manager for the configured cache dir
func Get() (*Manager, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		return global, nil
	}
	cfg := config.Get()
	m, err := New(cfg.CacheDir, Disabled(cfg.NoCache))
	if err != nil {
		return nil, err
	}
	global = m
	return global, nil
}

// HashKey maps an arbitrary key onto a file-safe name
func HashKey(key string) string {
	h := md5.Sum([]byte(key))
	return hex.EncodeToString(h[:])
}

// Key joins a namespace and its parts into a cache key
func Key(namespace string, parts ...any) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, p := range parts {
		fmt.Fprintf(&b, ":%v", p)
	}
	return b.String()
}

func (m *Manager) Set(key string, val any, ttl time.Duration) error {
	if m.disabled.Load() {
		return nil
	}
	safeKey := HashKey(key)
	slog.Log(context.Background(), config.LevelTrace, "Cache: SET", "key", key, "safeKey", safeKey, "ttl", ttl)

	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}

	var expiresAt int64
	if ttl > 0 {
		expiresAt = m.clock.Now().Add(ttl).Unix()
	}
	entry, err := json.Marshal(Entry{Value: data, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	return m.dv.Write(safeKey, entry)
}

// Get decodes the cached value into val
func (m *Manager) Get(key string, val any) error {
	if m.disabled.Load() {
		return ErrDisabled
	}
	safeKey := HashKey(key)
	slog.Log(context.Background(), config.LevelTrace, "Cache: GET", "key", key, "safeKey", safeKey)

	raw, err := m.dv.Read(safeKey)
	if err != nil {
		return err
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return fmt.Errorf("decoding cache entry: %w", err)
	}
	if entry.ExpiresAt > 0 && m.clock.Now().Unix() > entry.ExpiresAt {
		slog.Log(context.Background(), config.LevelTrace, "Cache: EXPIRED", "key", key)
		_ = m.dv.Erase(safeKey)
		return ErrExpired
	}

	return json.Unmarshal(entry.Value, val)
}

func (m *Manager) Delete(key string) error {
	if m.disabled.Load() {
		return nil
	}
	return m.dv.Erase(HashKey(key))
}

// Clear drops every entry
func (m *Manager) Clear() error {
	return m.dv.EraseAll()
}

// WithCache loads key into val, or calls fetch and stores its result
func WithCache[T any](m *Manager, key string, ttl time.Duration, val *T, fetch func() (T, error)) error {
	if err := m.Get(key, val); err == nil {
		return nil
	}
	fetched, err := fetch()
	if err != nil {
		return err
	}
	*val = fetched
	if err := m.Set(key, fetched, ttl); err != nil {
		slog.Warn("Cache: write failed", "key", key, "error", err)
	}
	return nil
}
