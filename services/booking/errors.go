package booking

import (
	"fmt"

	"bookwell/models"
)

// ValidationError reports a malformed or missing field on a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// IllegalTransitionError reports a state change not permitted from the
// booking's current status.
type IllegalTransitionError struct {
	Action string
	From   models.BookingStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %q", e.Action, e.From)
}

// ConflictError reports a slot overlap detected at creation or update.
type ConflictError struct {
	StaffID string
	Date    string
	Start   int
	End     int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflict for staff %s on %s [%d,%d)", e.StaffID, e.Date, e.Start, e.End)
}

// NotFoundError reports an unknown booking ID or cancel token. A
// soft-deleted booking yields the same error as a never-existing one.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

// NotCancellableError reports a resolvable cancel token whose booking
// already reached a terminal status.
type NotCancellableError struct {
	Status models.BookingStatus
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("booking cannot be cancelled in status %q", e.Status)
}
