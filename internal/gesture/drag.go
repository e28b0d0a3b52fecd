package gesture

import (
	"fmt"

	"github.com/Chedi19/res-appartement/internal/domain"
)

// dragState enumerates the drag-reschedule machine states.
type dragState int

const (
	dragIdle dragState = iota
	dragArmed
	dragPreviewing
)

// ConflictChecker re-checks a proposal against the live reservation set
// at commit time. The reservation store satisfies it.
type ConflictChecker interface {
	Conflict(candidate domain.Draft, excludeID string) (domain.Reservation, bool)
}

// Proposal is a duration-preserving shift of an existing reservation,
// ready to be applied through the store.
type Proposal struct {
	ReservationID string
	Start         domain.Day
	End           domain.Day
}

// Drag tracks the press-move-release reschedule gesture for a single
// reservation. A press arms the gesture with no visual change; the first
// move produces a preview range shifted to the hovered day with the
// original duration preserved. Releasing the pointer stops live tracking
// but keeps the proposal: only an explicit Commit or Cancel ends it.
type Drag struct {
	state  dragState
	origin domain.Reservation
	start  domain.Day
	end    domain.Day
}

// Press arms the gesture on r. Pressing while another gesture is armed
// or previewing implicitly cancels it and arms the new one.
func (g *Drag) Press(r domain.Reservation) {
	g.state = dragArmed
	g.origin = r
	g.start, g.end = domain.Day{}, domain.Day{}
}

// MoveTo proposes shifting the reservation so it starts on day, keeping
// its inclusive length. Ignored while idle.
func (g *Drag) MoveTo(day domain.Day) {
	if g.state == dragIdle {
		return
	}
	duration := g.origin.StartDate.DaysUntil(g.origin.EndDate)
	g.start = day
	g.end = day.AddDays(duration)
	g.state = dragPreviewing
}

// Release handles the global pointer-up. A previewing gesture keeps its
// last proposal (no implicit commit); a merely armed gesture, where the
// pointer never moved, is dropped.
func (g *Drag) Release() {
	if g.state == dragArmed {
		g.state = dragIdle
	}
}

// Cancel discards any proposal and returns to idle. The stored
// reservation is untouched.
func (g *Drag) Cancel() {
	g.state = dragIdle
	g.origin = domain.Reservation{}
}

// Commit finalizes the current proposal. The checker guards against
// overlaps that appeared since the gesture began: on conflict the
// gesture stays previewing (so the user can move or cancel) and the
// conflict error is returned. On success the machine returns to idle and
// the caller applies the proposal through the store.
func (g *Drag) Commit(check ConflictChecker) (Proposal, error) {
	if g.state != dragPreviewing {
		return Proposal{}, fmt.Errorf("%w: no drag proposal to commit", domain.ErrValidation)
	}

	candidate := domain.Draft{
		Apartment: g.origin.Apartment,
		StartDate: g.start,
		EndDate:   g.end,
	}
	if with, ok := check.Conflict(candidate, g.origin.ID); ok {
		return Proposal{}, &domain.ConflictError{With: with}
	}

	p := Proposal{ReservationID: g.origin.ID, Start: g.start, End: g.end}
	g.Cancel()
	return p, nil
}

// Active reports whether a preview is showing. It is false while merely
// armed: the gesture only becomes visible on the first pointer move.
func (g *Drag) Active() bool {
	return g.state == dragPreviewing
}

// Dragging reports whether any gesture is in progress (armed or
// previewing). Selection picks are suppressed while true.
func (g *Drag) Dragging() bool {
	return g.state != dragIdle
}

// Origin returns the reservation the gesture was armed on.
func (g *Drag) Origin() (domain.Reservation, bool) {
	return g.origin, g.state != dragIdle
}

// Preview returns the proposed range while previewing. The rendering
// layer shows this range instead of the stored one; the stored
// reservation is untouched until commit.
func (g *Drag) Preview() (start, end domain.Day, ok bool) {
	if g.state != dragPreviewing {
		return domain.Day{}, domain.Day{}, false
	}
	return g.start, g.end, true
}
