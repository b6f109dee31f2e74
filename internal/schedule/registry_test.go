package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blocker interface {
	BlockUntilContext(ctx context.Context, n int) error
}

func waitForTimers(t *testing.T, clk blocker, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clk.BlockUntilContext(ctx, n))
}

func TestAfterFires(t *testing.T) {
	clk := clockwork.NewFakeClock()
	r := NewRegistry(clk)

	fired := make(chan struct{})
	h := r.After(100*time.Millisecond, func() { close(fired) })
	assert.NotZero(t, h)
	assert.Equal(t, 1, r.Pending())

	waitForTimers(t, clk, 1)
	clk.Advance(100 * time.Millisecond)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Eventually(t, func() bool { return r.Pending() == 0 }, time.Second, time.Millisecond)
}

func TestCancel(t *testing.T) {
	clk := clockwork.NewFakeClock()
	r := NewRegistry(clk)

	var calls atomic.Int32
	h := r.After(time.Second, func() { calls.Add(1) })

	assert.True(t, r.Cancel(h))
	assert.False(t, r.Cancel(h))
	assert.Equal(t, 0, r.Pending())

	clk.Advance(time.Hour)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCloseDrainsAndRejects(t *testing.T) {
	clk := clockwork.NewFakeClock()
	r := NewRegistry(clk)

	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		r.After(time.Duration(i+1)*time.Second, func() { calls.Add(1) })
	}
	assert.Equal(t, 3, r.Pending())

	r.Close()
	assert.Equal(t, 0, r.Pending())

	clk.Advance(time.Hour)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	assert.Zero(t, r.After(time.Millisecond, func() { calls.Add(1) }))
	r.Close()
}

func TestCloseWaitsForRunningCallback(t *testing.T) {
	clk := clockwork.NewFakeClock()
	r := NewRegistry(clk)

	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	r.After(time.Millisecond, func() {
		close(started)
		<-release
		finished.Store(true)
	})

	waitForTimers(t, clk, 1)
	clk.Advance(time.Millisecond)
	<-started

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	r.Close()
	assert.True(t, finished.Load())
}
