package thumbnail

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/vidstrip/internal/schedule"
)

type blocker interface {
	BlockUntilContext(ctx context.Context, n int) error
	Advance(d time.Duration)
}

// tick waits for the next pending timer and fires it
func tick(t *testing.T, clk blocker) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clk.BlockUntilContext(ctx, 1))
	clk.Advance(TickDelay)
}

func waitCommit(t *testing.T, ch <-chan []Entry) []Entry {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("strip was never committed")
		return nil
	}
}

func times(entries []Entry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Time
	}
	return out
}

func TestPlaceholders(t *testing.T) {
	g := NewGenerator(NewRenderer(1), schedule.NewRegistry(clockwork.NewFakeClock()))
	for _, d := range []float64{0, 5, 120, 7200} {
		entries := g.Placeholders(d)
		assert.Equal(t, []float64{0, 10, 20, 30, 40, 50}, times(entries))
		for _, e := range entries {
			assert.NotEmpty(t, e.Image)
		}
	}
}

func TestInterval(t *testing.T) {
	assert.Equal(t, 20.0, Interval(120))
	assert.Equal(t, 1.0, Interval(3))
	assert.Equal(t, 16.0, Interval(100))
}

func TestGenerateTicks(t *testing.T) {
	clk := clockwork.NewFakeClock()
	g := NewGenerator(NewRenderer(1), schedule.NewRegistry(clk))

	committed := make(chan []Entry, 1)
	job := g.Generate(120, func(e []Entry) { committed <- e })

	// nothing is visible until the loop finishes
	select {
	case <-committed:
		t.Fatal("committed before the loop finished")
	default:
	}
	assert.False(t, job.Done())

	for i := 0; i < Count-1; i++ {
		tick(t, clk)
	}

	entries := waitCommit(t, committed)
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, times(entries))
	assert.True(t, job.Done())
}

func TestGenerateCapsFrameCount(t *testing.T) {
	clk := clockwork.NewFakeClock()
	g := NewGenerator(NewRenderer(1), schedule.NewRegistry(clk))

	committed := make(chan []Entry, 1)
	g.Generate(100, func(e []Entry) { committed <- e })
	for i := 0; i < Count-1; i++ {
		tick(t, clk)
	}

	entries := waitCommit(t, committed)
	assert.Len(t, entries, Count)
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Time, entries[i-1].Time)
	}
}

func TestGenerateShortDurationCommitsImmediately(t *testing.T) {
	g := NewGenerator(NewRenderer(1), schedule.NewRegistry(clockwork.NewFakeClock()))

	var got []Entry
	g.Generate(0.5, func(e []Entry) { got = e })
	assert.Equal(t, []float64{0}, times(got))
}

func TestGenerateWithoutDurationFallsBack(t *testing.T) {
	g := NewGenerator(NewRenderer(1), schedule.NewRegistry(clockwork.NewFakeClock()))

	var got []Entry
	job := g.Generate(0, func(e []Entry) { got = e })
	assert.True(t, job.Done())
	assert.Equal(t, []float64{0, 10, 20, 30, 40, 50}, times(got))
}

func TestGenerateNotReadyUsesLoadingFrame(t *testing.T) {
	r := NewRenderer(1)
	g := NewGenerator(r, schedule.NewRegistry(clockwork.NewFakeClock()), WithReadiness(func() bool { return false }))

	var got []Entry
	g.Generate(0.5, func(e []Entry) { got = e })
	require.Len(t, got, 1)
	assert.Equal(t, r.Loading(), got[0].Image)
}

func TestCancelStopsLoop(t *testing.T) {
	clk := clockwork.NewFakeClock()
	reg := schedule.NewRegistry(clk)
	g := NewGenerator(NewRenderer(1), reg)

	committed := make(chan []Entry, 1)
	job := g.Generate(120, func(e []Entry) { committed <- e })
	tick(t, clk)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clk.BlockUntilContext(ctx, 1))

	job.Cancel()
	assert.Equal(t, 0, reg.Pending())

	clk.Advance(time.Minute)
	select {
	case <-committed:
		t.Fatal("cancelled job committed")
	case <-time.After(20 * time.Millisecond):
	}
	assert.False(t, job.Done())
}
