package bookingRepo

import (
	"context"
	"errors"
	"time"

	"bookwell/models"
)

// Sentinel errors surfaced by the store. The service layer maps them
// to its typed error taxonomy.
var (
	ErrNotFound  = errors.New("booking not found")
	ErrSlotTaken = errors.New("slot already taken")
)

// BookingRepository is the persistence contract for bookings. Every
// read excludes soft-deleted documents, including token resolution.
type BookingRepository interface {
	// CreateIfSlotFree inserts the booking inside a transaction that
	// first verifies no active booking overlaps the same
	// (tenant, staff, date, [start,end)) interval. Returns ErrSlotTaken
	// when a concurrent or existing booking holds the slot.
	CreateIfSlotFree(ctx context.Context, b *models.Booking) error

	// UpdateIfSlotFree persists b under the same overlap guard,
	// ignoring b's own document in the check.
	UpdateIfSlotFree(ctx context.Context, b *models.Booking) error

	GetByID(ctx context.Context, tenantID, id string) (*models.Booking, error)
	GetByCancelToken(ctx context.Context, token string) (*models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	SoftDelete(ctx context.Context, tenantID, id, deletedBy string) error

	ListByDay(ctx context.Context, tenantID, date string) ([]models.Booking, error)

	// ListRemindable returns non-terminal bookings on date whose start
	// falls in [startMin, endMin) and whose reminder marker is unset.
	ListRemindable(ctx context.Context, tenantID, date string, startMin, endMin int) ([]models.Booking, error)

	// MarkReminderSent sets the reminder marker if and only if it is
	// still unset. It reports whether this call won the marker.
	MarkReminderSent(ctx context.Context, tenantID, id string, at time.Time) (bool, error)

	CountOverlapping(ctx context.Context, tenantID, staffID, date string, start, end int, excludeID string) (int, error)
}
