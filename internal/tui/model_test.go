package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leapstack-labs/figlens/internal/testutil"
	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []viewer.Event
}

func (r *recorder) Emit(e viewer.Event) { r.events = append(r.events, e) }

func (r *recorder) last() viewer.Event { return r.events[len(r.events)-1] }

func loadedViewer(t *testing.T) (*viewer.Viewer, *recorder) {
	t.Helper()
	rec := &recorder{}
	v := viewer.New(viewer.Config{
		Source: &viewer.StaticSource{
			Name:     "card",
			Document: testutil.Card(t),
			Bitmap:   viewer.Bitmap{Data: testutil.CardPNG(t), Format: "png"},
		},
		Logger:  testutil.NewTestLogger(t),
		Emitter: rec,
	})
	require.NoError(t, v.Load(context.Background()))
	return v, rec
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got
}

func TestNew_HoversFirstLayer(t *testing.T) {
	v, rec := loadedViewer(t)
	m := New(v)

	require.NotNil(t, v.Hovered())
	assert.Equal(t, "1:1", v.Hovered().ID)
	assert.Equal(t, viewer.EventNodeHovered, rec.last().Type)
	assert.Equal(t, "Card", m.list.Title)
	assert.Len(t, m.list.Items(), 3, "hidden layers are not listed")
}

func TestItems_IndentByDepth(t *testing.T) {
	v, _ := loadedViewer(t)
	got := items(v.Root(), v.Nodes())
	require.Len(t, got, 3)

	root := got[0].(nodeItem)
	child := got[1].(nodeItem)
	assert.Equal(t, "Card", root.Title())
	assert.Equal(t, "  Title", child.Title())
	assert.Equal(t, "  TEXT · 80px × 24px", child.Description())
	assert.Contains(t, child.FilterValue(), "1:2")
}

func TestUpdate_CursorHoversAndEnterSelects(t *testing.T) {
	v, rec := loadedViewer(t)
	m := New(v)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, v.Hovered())
	assert.Equal(t, "1:2", v.Hovered().ID)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, v.Selected())
	assert.Equal(t, "1:2", v.Selected().ID)
	assert.Equal(t, viewer.EventNodeSelected, rec.last().Type)

	view := m.View()
	assert.Contains(t, view, "Selected")
	assert.Contains(t, view, "font-family")
	assert.Contains(t, view, "Inter")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, v.Selected())
	ev := rec.last()
	assert.Equal(t, viewer.EventNodeSelected, ev.Type)
	assert.Nil(t, ev.Node)

	_ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "1:1", v.Hovered().ID)
}

func TestUpdate_Quit(t *testing.T) {
	v, _ := loadedViewer(t)
	m := New(v)

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.Quit(), cmd(), key.String())
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	v, _ := loadedViewer(t)
	m := update(t, New(v), tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 60, m.list.Width())
	assert.Equal(t, 38, m.list.Height())
}

func TestView_Hint(t *testing.T) {
	v := viewer.New(viewer.Config{Source: &viewer.StaticSource{Name: "empty"}})
	m := New(v)
	assert.Contains(t, m.View(), "Enter selects")
}

func TestRun_QuitsOnKey(t *testing.T) {
	v, _ := loadedViewer(t)
	err := Run(context.Background(), v, strings.NewReader("q"), io.Discard)
	assert.NoError(t, err)
}
