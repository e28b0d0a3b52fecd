package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chedi19/res-appartement/internal/domain"
	"github.com/Chedi19/res-appartement/internal/repo"
	"github.com/Chedi19/res-appartement/internal/service"
)

func day(t *testing.T, s string) domain.Day {
	t.Helper()
	d, err := domain.ParseDay(s)
	require.NoError(t, err)
	return d
}

// newTestController wires a controller to a reservation store backed by
// an empty in-memory blob store, with the default apartment roster
// supplying colors.
func newTestController(t *testing.T) (*Controller, *service.Reservations) {
	t.Helper()
	ctx := context.Background()

	blobs := repo.NewMemStore()
	require.NoError(t, blobs.Write(ctx, repo.KeyReservations, "[]"))

	apartments, err := service.LoadApartments(ctx, blobs)
	require.NoError(t, err)

	store, err := service.LoadReservations(ctx, blobs, apartments)
	require.NoError(t, err)

	return NewController(store), store
}

func mustCreate(t *testing.T, store *service.Reservations, apartment, client, start, end string) domain.Reservation {
	t.Helper()
	r, err := store.Create(context.Background(), domain.Draft{
		Apartment:  apartment,
		ClientName: client,
		StartDate:  day(t, start),
		EndDate:    day(t, end),
	})
	require.NoError(t, err)
	return r
}

func TestController_DragRescheduleFlow(t *testing.T) {
	ctrl, store := newTestController(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-15")

	ctrl.ReservationPressed(r)
	assert.True(t, ctrl.Dragging())
	_, _, ok := ctrl.DragPreview()
	assert.False(t, ok, "arming alone must not produce a proposal")

	// moving preserves the five-night duration anchored on the hovered day
	ctrl.PointerMoved(day(t, "2025-09-20"))
	start, end, ok := ctrl.DragPreview()
	require.True(t, ok)
	assert.Equal(t, day(t, "2025-09-20"), start)
	assert.Equal(t, day(t, "2025-09-25"), end)

	// releasing holds the proposal, and nothing has been stored
	ctrl.PointerReleased()
	assert.True(t, ctrl.Dragging())
	stored, found := store.Get(r.ID)
	require.True(t, found)
	assert.Equal(t, day(t, "2025-09-10"), stored.StartDate)

	updated, err := ctrl.CommitDrag(context.Background())
	require.NoError(t, err)
	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, r.Apartment, updated.Apartment)
	assert.Equal(t, r.ClientName, updated.ClientName)
	assert.Equal(t, day(t, "2025-09-20"), updated.StartDate)
	assert.Equal(t, day(t, "2025-09-25"), updated.EndDate)
	assert.False(t, ctrl.Dragging())
}

func TestController_DragCancelLeavesStoreUntouched(t *testing.T) {
	ctrl, store := newTestController(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-15")

	ctrl.ReservationPressed(r)
	ctrl.PointerMoved(day(t, "2025-09-20"))
	ctrl.CancelGestures()

	assert.False(t, ctrl.Dragging())
	stored, found := store.Get(r.ID)
	require.True(t, found)
	assert.Equal(t, day(t, "2025-09-10"), stored.StartDate)
	assert.Equal(t, day(t, "2025-09-15"), stored.EndDate)
}

func TestController_CommitOntoConflictHoldsProposal(t *testing.T) {
	ctrl, store := newTestController(t)
	moved := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-01", "2025-09-04")
	blocker := mustCreate(t, store, "Appartement 1", "Ahmed Ben Salah", "2025-09-10", "2025-09-14")

	ctrl.ReservationPressed(moved)
	ctrl.PointerMoved(day(t, "2025-09-12"))

	_, err := ctrl.CommitDrag(context.Background())
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, blocker.ID, conflict.With.ID)

	// the gesture survives a rejected commit so the user can keep moving
	assert.True(t, ctrl.Dragging())
	start, _, ok := ctrl.DragPreview()
	require.True(t, ok)
	assert.Equal(t, day(t, "2025-09-12"), start)

	stored, found := store.Get(moved.ID)
	require.True(t, found)
	assert.Equal(t, day(t, "2025-09-01"), stored.StartDate)

	// moving to a free range clears the way
	ctrl.PointerMoved(day(t, "2025-09-20"))
	updated, err := ctrl.CommitDrag(context.Background())
	require.NoError(t, err)
	assert.Equal(t, day(t, "2025-09-20"), updated.StartDate)
}

func TestController_CommitWithoutProposal(t *testing.T) {
	ctrl, _ := newTestController(t)

	_, err := ctrl.CommitDrag(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestController_ClicksSuppressedWhileDragging(t *testing.T) {
	ctrl, store := newTestController(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-15")

	ctrl.ReservationPressed(r)
	_, _, open := ctrl.DayClicked(day(t, "2025-09-01"))
	assert.False(t, open)
	_, anchored := ctrl.SelectionAnchor()
	assert.False(t, anchored, "clicks during a drag must not arm a selection")
}

func TestController_PressDropsPendingSelection(t *testing.T) {
	ctrl, store := newTestController(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-15")

	_, _, open := ctrl.DayClicked(day(t, "2025-09-01"))
	require.False(t, open)
	_, anchored := ctrl.SelectionAnchor()
	require.True(t, anchored)

	ctrl.ReservationPressed(r)
	_, anchored = ctrl.SelectionAnchor()
	assert.False(t, anchored)
}

func TestController_SelectionOpensNormalizedRange(t *testing.T) {
	ctrl, _ := newTestController(t)

	_, _, open := ctrl.DayClicked(day(t, "2025-09-08"))
	require.False(t, open)
	start, end, open := ctrl.DayClicked(day(t, "2025-09-03"))
	require.True(t, open)
	assert.Equal(t, day(t, "2025-09-03"), start)
	assert.Equal(t, day(t, "2025-09-08"), end)
}

func TestController_SubmitCreateValidates(t *testing.T) {
	ctrl, store := newTestController(t)

	_, err := ctrl.SubmitCreate(context.Background(), domain.Draft{
		Apartment: "Appartement 1",
		StartDate: day(t, "2025-09-01"),
		EndDate:   day(t, "2025-09-03"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, store.List())
}

func TestController_SubmitEdit(t *testing.T) {
	ctrl, store := newTestController(t)
	r := mustCreate(t, store, "Appartement 1", "Marie Lefèvre", "2025-09-10", "2025-09-15")

	t.Run("unknown id", func(t *testing.T) {
		_, err := ctrl.SubmitEdit(context.Background(), "nope", domain.Changes{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("merged value is validated", func(t *testing.T) {
		empty := "   "
		_, err := ctrl.SubmitEdit(context.Background(), r.ID, domain.Changes{ClientName: &empty})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("applies changes", func(t *testing.T) {
		notes := "late arrival"
		updated, err := ctrl.SubmitEdit(context.Background(), r.ID, domain.Changes{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, "late arrival", updated.Notes)
	})
}
