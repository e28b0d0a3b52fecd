package domain

import (
	"fmt"
	"time"
)

// dayLayout is the wire and display format for calendar days.
const dayLayout = "2006-01-02"

// Day identifies a calendar day: year, month, and day only, with no
// time-of-day or timezone component. The zero value is the zero time.
type Day struct {
	t time.Time
}

// NewDay builds a Day from its components.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates an instant to the calendar day it falls on, in the
// instant's own location.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay parses a "YYYY-MM-DD" string into a Day.
// Malformed input returns an error wrapping ErrInvalidDate; the value is
// never silently coerced.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Day{t: t.UTC()}, nil
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool { return d.t.IsZero() }

// String returns the day in "YYYY-MM-DD" form.
func (d Day) String() string { return d.t.Format(dayLayout) }

// Equal reports whether two days identify the same calendar day.
func (d Day) Equal(o Day) bool { return d.t.Equal(o.t) }

// Before reports whether d falls strictly before o.
func (d Day) Before(o Day) bool { return d.t.Before(o.t) }

// After reports whether d falls strictly after o.
func (d Day) After(o Day) bool { return d.t.After(o.t) }

// Compare returns -1, 0, or +1 ordering d against o.
func (d Day) Compare(o Day) int { return d.t.Compare(o.t) }

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// DaysUntil returns the number of calendar days from d to o.
// Negative when o is before d.
func (d Day) DaysUntil(o Day) int {
	return int(o.t.Sub(d.t) / (24 * time.Hour))
}

// Time exposes the underlying UTC-midnight instant, for rendering code
// that needs weekday or month arithmetic.
func (d Day) Time() time.Time { return d.t }

// MarshalJSON encodes the day as a "YYYY-MM-DD" JSON string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" JSON string.
func (d *Day) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, b)
	}
	parsed, err := ParseDay(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MinDay returns the earlier of two days.
func MinDay(a, b Day) Day {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDay returns the later of two days.
func MaxDay(a, b Day) Day {
	if b.After(a) {
		return b
	}
	return a
}

// DayInRange reports whether day falls within [start, end], inclusive on
// both ends.
func DayInRange(day, start, end Day) bool {
	return !day.Before(start) && !day.After(end)
}

// RangesOverlap reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] intersect. Touching endpoints count as overlapping: a
// reservation ending on a given day still occupies it, so a back-to-back
// booking starting that same day is a conflict.
func RangesOverlap(aStart, aEnd, bStart, bEnd Day) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
