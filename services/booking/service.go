package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "bookwell/database/repository/booking"
	"bookwell/models"
	"bookwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minutesPerDay = 24 * 60

// CreateBooking validates the request, derives the end time, generates
// the cancel token and inserts the booking in PENDING status. A slot
// overlap surfaces as *ConflictError; exactly one of two concurrent
// creations for the same slot succeeds.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	end := req.End
	duration := req.Duration
	if end == 0 {
		end = req.Start + duration
	} else if duration == 0 {
		duration = end - req.Start
	}
	if end <= req.Start {
		return nil, &ValidationError{Field: "end", Message: "end time must be after start time"}
	}
	if end > minutesPerDay {
		return nil, &ValidationError{Field: "end", Message: "booking may not cross midnight"}
	}

	token, err := utils.NewCancelToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cancel token: %w", err)
	}

	b := &models.Booking{
		ID:              uuid.New().String(),
		TenantID:        req.TenantID,
		CustomerID:      req.CustomerID,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Start:           req.Start,
		End:             end,
		DurationMinutes: duration,
		Price:           req.Price,
		Status:          models.StatusPending,
		CustomerNote:    req.Note,
		CancelToken:     token,
		Source:          req.Source,
		LastModifiedBy:  req.ActorID,
	}

	if err := s.Repo.CreateIfSlotFree(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, &ConflictError{StaffID: req.StaffID, Date: req.Date, Start: req.Start, End: end}
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	zap.L().Info("booking created",
		zap.String("tenantId", b.TenantID),
		zap.String("bookingId", b.ID),
		zap.String("date", b.Date),
		zap.String("source", string(b.Source)),
	)
	return b, nil
}

func validateCreate(req CreateBookingRequest) error {
	if req.TenantID == "" {
		return &ValidationError{Field: "tenantId", Message: "tenant is required"}
	}
	if req.CustomerID == "" {
		return &ValidationError{Field: "customerId", Message: "customer is required"}
	}
	if req.ServiceID == "" {
		return &ValidationError{Field: "serviceId", Message: "service is required"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	if req.Start < 0 || req.Start >= minutesPerDay {
		return &ValidationError{Field: "start", Message: "start must be within the day"}
	}
	if req.Duration <= 0 && req.End <= req.Start {
		return &ValidationError{Field: "durationMinutes", Message: "a positive duration or an explicit end time is required"}
	}
	return nil
}

// GetBooking retrieves a booking scoped to its tenant.
func (s *DefaultBookingService) GetBooking(ctx context.Context, tenantID, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", Key: id}
		}
		return nil, err
	}
	return b, nil
}

// ListBookingsByDay returns a tenant's bookings for one date.
func (s *DefaultBookingService) ListBookingsByDay(ctx context.Context, tenantID, date string) ([]models.Booking, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	return s.Repo.ListByDay(ctx, tenantID, date)
}

// UpdateBooking applies the requested changes while the booking is
// non-terminal. Changing date, start, duration or staff re-derives the
// end time and re-runs the slot-overlap guard.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, tenantID, id string, req UpdateBookingRequest) (*models.Booking, error) {
	b, err := s.GetBooking(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := guard(ActionUpdate, b); err != nil {
		return nil, err
	}

	slotChanged := false
	if req.StaffID != nil && *req.StaffID != b.StaffID {
		b.StaffID = *req.StaffID
		slotChanged = true
	}
	if req.ServiceID != nil {
		b.ServiceID = *req.ServiceID
	}
	if req.Date != nil && *req.Date != b.Date {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			return nil, &ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
		}
		b.Date = *req.Date
		slotChanged = true
	}
	if req.Start != nil && *req.Start != b.Start {
		if *req.Start < 0 || *req.Start >= minutesPerDay {
			return nil, &ValidationError{Field: "start", Message: "start must be within the day"}
		}
		b.Start = *req.Start
		slotChanged = true
	}
	if req.Duration != nil && *req.Duration != b.DurationMinutes {
		if *req.Duration <= 0 {
			return nil, &ValidationError{Field: "durationMinutes", Message: "duration must be positive"}
		}
		b.DurationMinutes = *req.Duration
		slotChanged = true
	}
	if req.CustomerNote != nil {
		b.CustomerNote = *req.CustomerNote
	}
	if req.InternalNote != nil {
		b.InternalNote = *req.InternalNote
	}
	if req.StoreNoteToCustomer != nil {
		b.StoreNoteToCustomer = *req.StoreNoteToCustomer
	}
	b.LastModifiedBy = req.ActorID

	if slotChanged {
		b.End = b.Start + b.DurationMinutes
		if b.End > minutesPerDay {
			return nil, &ValidationError{Field: "end", Message: "booking may not cross midnight"}
		}
		if err := s.Repo.UpdateIfSlotFree(ctx, b); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return nil, &ConflictError{StaffID: b.StaffID, Date: b.Date, Start: b.Start, End: b.End}
			}
			if errors.Is(err, bookingRepo.ErrNotFound) {
				return nil, &NotFoundError{Resource: "booking", Key: id}
			}
			return nil, fmt.Errorf("failed to update booking: %w", err)
		}
		return b, nil
	}

	if err := s.Repo.Update(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", Key: id}
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return b, nil
}

// Confirm moves a pending booking to CONFIRMED.
func (s *DefaultBookingService) Confirm(ctx context.Context, tenantID, id, actorID string) (*models.Booking, error) {
	return s.transition(ctx, tenantID, id, ActionConfirm, func(b *models.Booking) {
		b.Status = models.StatusConfirmed
		b.LastModifiedBy = actorID
	})
}

// StartService moves a confirmed booking to IN_PROGRESS.
func (s *DefaultBookingService) StartService(ctx context.Context, tenantID, id, actorID string) (*models.Booking, error) {
	return s.transition(ctx, tenantID, id, ActionStartService, func(b *models.Booking) {
		b.Status = models.StatusInProgress
		b.LastModifiedBy = actorID
	})
}

// Complete moves a confirmed or in-progress booking to COMPLETED.
func (s *DefaultBookingService) Complete(ctx context.Context, tenantID, id, actorID string) (*models.Booking, error) {
	return s.transition(ctx, tenantID, id, ActionComplete, func(b *models.Booking) {
		b.Status = models.StatusCompleted
		b.LastModifiedBy = actorID
	})
}

// Cancel moves a non-terminal booking to CANCELLED, stamping the
// reason and time. Cancelling an already-terminal booking is an error,
// not a silent success.
func (s *DefaultBookingService) Cancel(ctx context.Context, tenantID, id, reason, actorID string) (*models.Booking, error) {
	now := s.now()
	return s.transition(ctx, tenantID, id, ActionCancel, func(b *models.Booking) {
		b.Status = models.StatusCancelled
		b.CancelReason = reason
		b.CancelledAt = &now
		b.LastModifiedBy = actorID
	})
}

// MarkNoShow moves a confirmed booking past its start time to NO_SHOW.
func (s *DefaultBookingService) MarkNoShow(ctx context.Context, tenantID, id, actorID string) (*models.Booking, error) {
	b, err := s.GetBooking(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := guard(ActionNoShow, b); err != nil {
		return nil, err
	}
	startsAt, err := b.StartsAt(time.UTC)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "stored date is malformed"}
	}
	if s.now().Before(startsAt) {
		return nil, &IllegalTransitionError{Action: ActionNoShow, From: b.Status}
	}

	b.Status = models.StatusNoShow
	b.LastModifiedBy = actorID
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to persist no-show: %w", err)
	}
	return b, nil
}

// DeleteBooking soft-deletes a booking; afterwards it is invisible to
// every lookup, including cancel-token resolution.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, tenantID, id, actorID string) error {
	if err := s.Repo.SoftDelete(ctx, tenantID, id, actorID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return &NotFoundError{Resource: "booking", Key: id}
		}
		return err
	}
	return nil
}

// transition loads the booking, applies the guarded mutation and persists it.
func (s *DefaultBookingService) transition(ctx context.Context, tenantID, id, action string, mutate func(*models.Booking)) (*models.Booking, error) {
	b, err := s.GetBooking(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := guard(action, b); err != nil {
		return nil, err
	}

	mutate(b)
	if err := s.Repo.Update(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", Key: id}
		}
		return nil, fmt.Errorf("failed to persist %s: %w", action, err)
	}

	zap.L().Info("booking transition",
		zap.String("tenantId", tenantID),
		zap.String("bookingId", id),
		zap.String("action", action),
		zap.String("status", string(b.Status)),
	)
	return b, nil
}
