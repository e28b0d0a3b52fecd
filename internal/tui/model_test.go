package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chedi19/res-appartement/internal/domain"
	"github.com/Chedi19/res-appartement/internal/repo"
	"github.com/Chedi19/res-appartement/internal/service"
)

func newTestModel(t *testing.T) (*Model, *service.Reservations) {
	t.Helper()
	ctx := context.Background()

	blobs := repo.NewMemStore()
	require.NoError(t, blobs.Write(ctx, repo.KeyReservations, "[]"))

	apartments, err := service.LoadApartments(ctx, blobs)
	require.NoError(t, err)
	store, err := service.LoadReservations(ctx, blobs, apartments)
	require.NoError(t, err)

	exporter := service.NewExport(store, t.TempDir())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	m := NewModel(store, apartments, exporter, log)
	m.cursor = day(t, "2025-09-10")
	return m, store
}

// coordFor computes the terminal coordinate of a day cell the same way
// the renderer lays the grid out, targeting the middle of the cell.
func coordFor(m *Model, d domain.Day) (x, y int) {
	first := monthStart(m.cursor)
	idx := first.DaysUntil(d) + mondayIndex(first)
	return gridLeft + (idx%7)*cellW + 2, headerRows + idx/7
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDayAt_RoundTripsEveryCell(t *testing.T) {
	m, _ := newTestModel(t)

	first := monthStart(m.cursor)
	for i := 0; i < daysInMonth(m.cursor); i++ {
		want := first.AddDays(i)
		x, y := coordFor(m, want)
		got, ok := m.dayAt(x, y)
		require.True(t, ok, "cell for %s", want)
		assert.Equal(t, want, got)
	}
}

func TestDayAt_OutsideGrid(t *testing.T) {
	m, _ := newTestModel(t)

	_, ok := m.dayAt(0, headerRows) // left margin
	assert.False(t, ok)
	_, ok = m.dayAt(gridLeft+1, 0) // title row
	assert.False(t, ok)
	_, ok = m.dayAt(gridLeft+1, headerRows+9) // far below the last week
	assert.False(t, ok)
}

func TestMouseDrag_PressMoveReleaseCommit(t *testing.T) {
	m, store := newTestModel(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-13")

	x, y := coordFor(m, r.StartDate)
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.ctrl.Dragging())

	x, y = coordFor(m, day(t, "2025-09-20"))
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	start, end, ok := m.ctrl.DragPreview()
	require.True(t, ok)
	assert.Equal(t, day(t, "2025-09-20"), start)
	assert.Equal(t, day(t, "2025-09-23"), end)

	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease})
	require.True(t, m.ctrl.Dragging(), "release holds the proposal")

	m.Update(keyMsg("enter"))
	assert.False(t, m.ctrl.Dragging())
	stored, found := store.Get(r.ID)
	require.True(t, found)
	assert.Equal(t, day(t, "2025-09-20"), stored.StartDate)
}

func TestMouseDoubleClickOpensEditor(t *testing.T) {
	m, store := newTestModel(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-13")

	clock := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	x, y := coordFor(m, r.StartDate)
	press := tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m.Update(press)
	clock = clock.Add(150 * time.Millisecond)
	m.Update(press)

	assert.Equal(t, viewForm, m.view)
	assert.Equal(t, r.ID, m.form.editID)
	assert.Equal(t, "Marie Lefèvre", m.form.client.Value())
}

func TestKeyboardMove_CursorDrivesPreview(t *testing.T) {
	m, store := newTestModel(t)
	mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-13")

	m.setCursor(day(t, "2025-09-10"))
	m.Update(keyMsg("m"))
	require.True(t, m.ctrl.Dragging())

	m.Update(tea.KeyMsg{Type: tea.KeyDown}) // one week later
	start, _, ok := m.ctrl.DragPreview()
	require.True(t, ok)
	assert.Equal(t, day(t, "2025-09-17"), start)

	m.Update(keyMsg("esc"))
	assert.False(t, m.ctrl.Dragging())
}

func TestClickEmptyDays_OpensCreateForm(t *testing.T) {
	m, _ := newTestModel(t)

	x, y := coordFor(m, day(t, "2025-09-03"))
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, viewCalendar, m.view)

	x, y = coordFor(m, day(t, "2025-09-06"))
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, viewForm, m.view)
	assert.Equal(t, "2025-09-03", m.form.start.Value())
	assert.Equal(t, "2025-09-06", m.form.end.Value())
}

func TestConfirmDelete(t *testing.T) {
	m, store := newTestModel(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-13")

	m.setCursor(r.StartDate)
	m.Update(keyMsg("d"))
	require.Equal(t, viewConfirmDelete, m.view)

	t.Run("declining keeps it", func(t *testing.T) {
		m.Update(keyMsg("n"))
		assert.Equal(t, viewCalendar, m.view)
		_, found := store.Get(r.ID)
		assert.True(t, found)
	})

	t.Run("confirming deletes", func(t *testing.T) {
		m.Update(keyMsg("d"))
		require.Equal(t, viewConfirmDelete, m.view)
		m.Update(keyMsg("y"))
		assert.Equal(t, viewCalendar, m.view)
		_, found := store.Get(r.ID)
		assert.False(t, found)
	})
}

func TestViewRendersPreviewNotStoredRange(t *testing.T) {
	m, store := newTestModel(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-13")

	m.setCursor(r.StartDate)
	m.Update(keyMsg("m"))
	m.ctrl.PointerMoved(day(t, "2025-09-20"))

	on := m.reservationsOn(day(t, "2025-09-20"))
	require.Len(t, on, 1)
	assert.Equal(t, r.ID, on[0].ID)
	assert.Empty(t, m.reservationsOn(day(t, "2025-09-13")), "stored range is hidden while previewing")

	// the stored collection itself is untouched
	stored, _ := store.Get(r.ID)
	assert.Equal(t, day(t, "2025-09-10"), stored.StartDate)
}
