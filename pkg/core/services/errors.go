package services

import (
	"errors"
	"fmt"
)

// Lifecycle error kinds surfaced to callers. The UI layer owns user-facing
// messaging; these exist so it can branch with errors.Is.
var (
	// ErrNotFound means a referenced entity is missing or no longer available.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means a role or ownership check failed.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState means the operation is invalid for the entity's current
	// lifecycle state, e.g. cancelling an already-cancelled meeting.
	ErrInvalidState = errors.New("invalid lifecycle state")

	// ErrSelfBooking means a host tried to book their own timeslot.
	ErrSelfBooking = errors.New("cannot book own timeslot")

	// ErrConflict means the caller lost a booking race to a concurrent request.
	ErrConflict = errors.New("timeslot was booked concurrently")

	// ErrInvalidTime means a timeslot was posted with a start time in the past.
	ErrInvalidTime = errors.New("start time is in the past")

	// ErrInvalidDuration means the duration is not one of the allowed values.
	ErrInvalidDuration = errors.New("invalid timeslot duration")

	// ErrLocationNotApproved means the referenced location has not been
	// approved for meetings yet.
	ErrLocationNotApproved = errors.New("location is not approved")
)

// StoreError wraps an entity-store failure that aborted an operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store failure: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
