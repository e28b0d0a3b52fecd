package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by store and service functions when the requested
// reservation does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing client name, end date not after start date).
var ErrValidation = errors.New("validation error")

// ErrInvalidDate is returned by ParseDay when a day string is malformed.
var ErrInvalidDate = errors.New("invalid date")

// ErrConflict is the sentinel matched by errors.Is for any reservation
// overlap rejection. The concrete error is always a *ConflictError.
var ErrConflict = errors.New("reservation conflict")

// ErrPersistence is returned when the underlying blob store fails.
// A mutation that hits it is rolled back; the in-memory collection never
// keeps unpersisted state.
var ErrPersistence = errors.New("persistence failure")

// ConflictError reports that a candidate range overlaps an existing
// reservation in the same apartment. It carries the conflicting
// reservation so the UI can name it in the notice.
type ConflictError struct {
	With Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("reservation conflict: overlaps %s (%s to %s)",
		e.With.ClientName, e.With.StartDate, e.With.EndDate)
}

// Is makes errors.Is(err, ErrConflict) match a *ConflictError.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
