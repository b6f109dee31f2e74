package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type strip struct {
	Times []float64 `json:"times"`
}

func TestSetGet(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Set("strip:a", strip{Times: []float64{0, 20}}, time.Hour))

	var got strip
	require.NoError(t, m.Get("strip:a", &got))
	assert.Equal(t, []float64{0, 20}, got.Times)

	require.NoError(t, m.Set("cell:a", []byte("▀▄"), 0))
	var raw []byte
	require.NoError(t, m.Get("cell:a", &raw))
	assert.Equal(t, "▀▄", string(raw))

	require.NoError(t, m.Delete("cell:a"))
	assert.Error(t, m.Get("cell:a", &raw))
}

func TestSetGetTerminalCell(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)

	cell := "\x1b[38;2;1;2;3m▀\x1b[0m"
	key := Key("cell", "x", 16)
	require.NoError(t, m.Set(key, []byte(cell), 24*time.Hour))

	var raw []byte
	require.NoError(t, m.Get(key, &raw))
	assert.Equal(t, cell, string(raw))
}

func TestSetDisabledLive(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, m.Set("k", 1, 0))

	m.SetDisabled(true)
	assert.True(t, m.Disabled())
	var v int
	assert.ErrorIs(t, m.Get("k", &v), ErrDisabled)

	m.SetDisabled(false)
	require.NoError(t, m.Get("k", &v))
	assert.Equal(t, 1, v)
}

func TestExpiry(t *testing.T) {
	clk := clockwork.NewFakeClock()
	m, err := New(t.TempDir(), WithClock(clk))
	require.NoError(t, err)

	require.NoError(t, m.Set("k", 1, time.Minute))
	var v int
	require.NoError(t, m.Get("k", &v))
	assert.Equal(t, 1, v)

	clk.Advance(2 * time.Minute)
	assert.ErrorIs(t, m.Get("k", &v), ErrExpired)
}

func TestDisabled(t *testing.T) {
	m, err := New(t.TempDir(), Disabled(true))
	require.NoError(t, err)

	require.NoError(t, m.Set("k", 1, 0))
	var v int
	assert.ErrorIs(t, m.Get("k", &v), ErrDisabled)
}

func TestWithCache(t *testing.T) {
	m, err := New(t.TempDir())
	require.NoError(t, err)

	calls := 0
	fetch := func() (strip, error) {
		calls++
		return strip{Times: []float64{1}}, nil
	}

	var a, b strip
	require.NoError(t, WithCache(m, "x", time.Hour, &a, fetch))
	require.NoError(t, WithCache(m, "x", time.Hour, &b, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, a, b)

	var c strip
	err = WithCache(m, "y", time.Hour, &c, func() (strip, error) { return strip{}, errors.New("nope") })
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "cell:abc:24:6", Key("cell", "abc", 24, 6))
	assert.Len(t, HashKey("anything"), 32)
	assert.NotEqual(t, HashKey("a"), HashKey("b"))
	m, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, m.Set("k", 1, 0))
	require.NoError(t, m.Clear())
	var v int
	assert.Error(t, m.Get("k", &v))
}
