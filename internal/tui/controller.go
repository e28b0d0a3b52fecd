// Package tui implements the interactive calendar surface: a bubbletea
// program rendering the month grid, the reservation list, and the
// editor forms, and translating key and mouse input into the discrete
// gesture events the core consumes.
package tui

import (
	"context"

	"github.com/Chedi19/res-appartement/internal/domain"
	"github.com/Chedi19/res-appartement/internal/gesture"
	"github.com/Chedi19/res-appartement/internal/service"
)

// Controller owns the two gesture state machines and routes their
// outcomes into the reservation store. The rendering layer dispatches
// events into it and observes its state; no interaction state lives
// anywhere else.
type Controller struct {
	store     *service.Reservations
	selection gesture.Selection
	drag      gesture.Drag
}

// NewController wires a controller to the reservation store.
func NewController(store *service.Reservations) *Controller {
	return &Controller{store: store}
}

// DayClicked feeds a calendar day click into the selection gesture.
// Clicks are suppressed while a drag is in progress (the two gestures
// share the calendar surface and are mutually exclusive). When the
// click completes a range, the normalized range is returned with
// open=true and the caller opens the creation editor.
func (c *Controller) DayClicked(day domain.Day) (start, end domain.Day, open bool) {
	if c.drag.Dragging() {
		return domain.Day{}, domain.Day{}, false
	}
	return c.selection.Pick(day)
}

// ReservationPressed arms the drag gesture on r. Any selection in
// progress is dropped, and a prior drag is implicitly cancelled.
func (c *Controller) ReservationPressed(r domain.Reservation) {
	c.selection.Cancel()
	c.drag.Press(r)
}

// PointerMoved updates the drag preview to the hovered day.
func (c *Controller) PointerMoved(day domain.Day) {
	c.drag.MoveTo(day)
}

// PointerReleased handles the global pointer-up: a previewing drag
// holds its proposal awaiting commit or cancel.
func (c *Controller) PointerReleased() {
	c.drag.Release()
}

// CommitDrag re-checks the held proposal for conflicts and applies it
// through the store. On conflict the drag stays previewing and the
// conflict error is returned for user messaging.
func (c *Controller) CommitDrag(ctx context.Context) (domain.Reservation, error) {
	p, err := c.drag.Commit(c.store)
	if err != nil {
		return domain.Reservation{}, err
	}
	return c.store.Update(ctx, p.ReservationID, domain.Changes{
		StartDate: &p.Start,
		EndDate:   &p.End,
	})
}

// CancelGestures aborts whatever gesture is in progress. Stored
// reservations are untouched.
func (c *Controller) CancelGestures() {
	c.selection.Cancel()
	c.drag.Cancel()
}

// SubmitCreate validates the draft at the editor boundary and creates
// the reservation.
func (c *Controller) SubmitCreate(ctx context.Context, draft domain.Draft) (domain.Reservation, error) {
	if err := service.ValidateDraft(draft); err != nil {
		return domain.Reservation{}, err
	}
	return c.store.Create(ctx, draft)
}

// SubmitEdit validates the merged value at the editor boundary and
// applies the changes.
func (c *Controller) SubmitEdit(ctx context.Context, id string, changes domain.Changes) (domain.Reservation, error) {
	existing, ok := c.store.Get(id)
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	merged := changes.Apply(existing)
	if err := service.ValidateDraft(domain.Draft{
		Apartment:  merged.Apartment,
		ClientName: merged.ClientName,
		StartDate:  merged.StartDate,
		EndDate:    merged.EndDate,
	}); err != nil {
		return domain.Reservation{}, err
	}
	return c.store.Update(ctx, id, changes)
}

// SubmitDelete removes a reservation. Deleting an absent id is a no-op.
func (c *Controller) SubmitDelete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, id)
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool { return c.drag.Dragging() }

// DragPreview exposes the proposed range while a drag is previewing.
func (c *Controller) DragPreview() (start, end domain.Day, ok bool) {
	return c.drag.Preview()
}

// DragOrigin exposes the reservation a drag was armed on.
func (c *Controller) DragOrigin() (domain.Reservation, bool) {
	return c.drag.Origin()
}

// SelectionAnchor exposes the pending selection anchor.
func (c *Controller) SelectionAnchor() (domain.Day, bool) {
	return c.selection.Anchor()
}
