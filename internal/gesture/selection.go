// Package gesture implements the two pointer-driven interaction state
// machines of the calendar surface: two-click range selection and
// press-drag rescheduling. Both are plain values with no UI dependency;
// the rendering layer dispatches discrete events into them and observes
// their state. Interruptions (cancel, a competing gesture) can never
// corrupt stored reservations because the machines only ever hold
// proposals.
package gesture

import "github.com/Chedi19/res-appartement/internal/domain"

// Selection tracks the two-click range-selection gesture. The first pick
// sets an anchor; the second finalizes the range (normalized so start is
// never after end) and resets the machine.
type Selection struct {
	anchor    domain.Day
	anchorSet bool
}

// Pick feeds a clicked day into the gesture. done is false after the
// first (anchor) pick; on the second pick it returns the finalized
// normalized range and the machine returns to idle.
func (s *Selection) Pick(day domain.Day) (start, end domain.Day, done bool) {
	if !s.anchorSet {
		s.anchor = day
		s.anchorSet = true
		return domain.Day{}, domain.Day{}, false
	}

	start = domain.MinDay(s.anchor, day)
	end = domain.MaxDay(s.anchor, day)
	s.anchorSet = false
	return start, end, true
}

// Cancel drops any anchor without emitting a range.
func (s *Selection) Cancel() {
	s.anchorSet = false
}

// Anchor returns the pending anchor day, if one is set.
func (s *Selection) Anchor() (domain.Day, bool) {
	return s.anchor, s.anchorSet
}

// Active reports whether a selection is in progress (anchor set).
func (s *Selection) Active() bool {
	return s.anchorSet
}
