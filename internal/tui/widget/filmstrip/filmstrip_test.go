package filmstrip

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ygelfand/vidstrip/internal/cache"
	"github.com/ygelfand/vidstrip/internal/theme"
	"github.com/ygelfand/vidstrip/internal/thumbnail"
)

func strip() []thumbnail.Entry {
	return []thumbnail.Entry{
		{Time: 0, Image: "data:image/jpeg;base64,AA=="},
		{Time: 20, Image: "data:image/jpeg;base64,AQ=="},
		{Time: 40, Image: "data:image/jpeg;base64,Ag=="},
	}
}

func TestActiveIndex(t *testing.T) {
	e := strip()
	assert.Equal(t, 0, ActiveIndex(e, 0))
	assert.Equal(t, 0, ActiveIndex(e, 19.9))
	assert.Equal(t, 1, ActiveIndex(e, 20))
	assert.Equal(t, 2, ActiveIndex(e, 500))
	assert.Equal(t, -1, ActiveIndex(nil, 5))
}

func TestSetEntriesRendersOnce(t *testing.T) {
	m := New(nil)
	calls := 0
	m.render = func(uri string) (string, error) {
		calls++
		return "cell:" + uri[len(uri)-4:], nil
	}

	cmd := m.SetEntries(strip())
	require.NotNil(t, cmd)
	msgs := drain(cmd)
	assert.Len(t, msgs, 3)
	for _, msg := range msgs {
		m.Update(msg)
	}
	assert.Equal(t, 3, calls)

	// already rendered cells are not queued again
	assert.Nil(t, m.SetEntries(strip()))
	assert.Contains(t, m.View(theme.DarkTheme, 6, 25, true), "cell:AQ==")
}

func TestCellsComeFromCache(t *testing.T) {
	cm, err := cache.New(t.TempDir())
	require.NoError(t, err)

	e := strip()[:1]
	require.NoError(t, cm.Set(cellKey(e[0].Image), []byte("cached"), CellTTL))

	m := New(cm)
	m.render = func(string) (string, error) {
		t.Fatal("render should not run on a cache hit")
		return "", nil
	}
	for _, msg := range drain(m.SetEntries(e)) {
		m.Update(msg)
	}
	assert.Contains(t, m.View(theme.LightTheme, 6, 0, true), "cached")
}

func TestRenderedCellsAreCached(t *testing.T) {
	cm, err := cache.New(t.TempDir())
	require.NoError(t, err)
	e := strip()[:1]
	cell := "\x1b[38;2;1;2;3m▀\x1b[0m"

	first := New(cm)
	first.render = func(string) (string, error) { return cell, nil }
	for _, msg := range drain(first.SetEntries(e)) {
		first.Update(msg)
	}

	var raw []byte
	require.NoError(t, cm.Get(cellKey(e[0].Image), &raw))
	assert.Equal(t, cell, string(raw))

	second := New(cm)
	second.render = func(string) (string, error) {
		t.Fatal("cell should come from the cache")
		return "", nil
	}
	msgs := drain(second.SetEntries(e))
	require.Len(t, msgs, 1)
	assert.Equal(t, cell, msgs[0].(CellRenderedMsg).View)
}

func TestCollapsedShowsLabels(t *testing.T) {
	m := New(nil)
	m.entries = strip()
	out := m.View(theme.DarkTheme, 2, 0, false)
	assert.Contains(t, out, "0:00")
	assert.Contains(t, out, "0:20")
	assert.NotContains(t, out, "0:40")
}

func TestEmptyStrip(t *testing.T) {
	assert.Contains(t, New(nil).View(theme.DarkTheme, 6, 0, true), "Generating")
}

// drain runs a command and flattens any batch it returns
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	case nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}
