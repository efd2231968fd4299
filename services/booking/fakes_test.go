package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "bookwell/database/repository/booking"
	"bookwell/models"
)

// memBookingRepo is an in-memory BookingRepository mirroring the
// store's overlap and marker semantics.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) overlaps(b *models.Booking, excludeID string) bool {
	if b.StaffID == "" {
		return false
	}
	for _, other := range r.bookings {
		if other.ID == excludeID || other.DeletedAt != nil {
			continue
		}
		if other.TenantID != b.TenantID || other.StaffID != b.StaffID || other.Date != b.Date {
			continue
		}
		if other.IsTerminal() {
			continue
		}
		if other.Start < b.End && other.End > b.Start {
			return true
		}
	}
	return false
}

func (r *memBookingRepo) CreateIfSlotFree(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overlaps(b, "") {
		return bookingRepo.ErrSlotTaken
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) UpdateIfSlotFree(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok || stored.DeletedAt != nil {
		return bookingRepo.ErrNotFound
	}
	if r.overlaps(b, b.ID) {
		return bookingRepo.ErrSlotTaken
	}
	b.UpdatedAt = time.Now()
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, tenantID, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.DeletedAt != nil || b.TenantID != tenantID {
		return nil, bookingRepo.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) GetByCancelToken(ctx context.Context, token string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.CancelToken == token && b.DeletedAt == nil {
			clone := *b
			return &clone, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *memBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok || stored.DeletedAt != nil {
		return bookingRepo.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) SoftDelete(ctx context.Context, tenantID, id, deletedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.DeletedAt != nil || b.TenantID != tenantID {
		return bookingRepo.ErrNotFound
	}
	now := time.Now()
	b.DeletedAt = &now
	b.LastModifiedBy = deletedBy
	return nil
}

func (r *memBookingRepo) ListByDay(ctx context.Context, tenantID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.DeletedAt == nil && b.TenantID == tenantID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListRemindable(ctx context.Context, tenantID, date string, startMin, endMin int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.DeletedAt != nil || b.TenantID != tenantID || b.Date != date {
			continue
		}
		if b.IsTerminal() || b.ReminderSentAt != nil {
			continue
		}
		if b.Start >= startMin && b.Start < endMin {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) MarkReminderSent(ctx context.Context, tenantID, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.DeletedAt != nil || b.TenantID != tenantID {
		return false, nil
	}
	if b.ReminderSentAt != nil {
		return false, nil
	}
	b.ReminderSentAt = &at
	return true, nil
}

func (r *memBookingRepo) CountOverlapping(ctx context.Context, tenantID, staffID, date string, start, end int, excludeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	probe := &models.Booking{TenantID: tenantID, StaffID: staffID, Date: date, Start: start, End: end}
	if r.overlaps(probe, excludeID) {
		return 1, nil
	}
	return 0, nil
}
