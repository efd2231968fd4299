package booking

import (
	"context"
	"time"

	bookingRepo "bookwell/database/repository/booking"
	"bookwell/models"
)

// CreateBookingRequest carries everything needed to create a booking.
// End is optional; when zero it is derived from Start + DurationMinutes.
type CreateBookingRequest struct {
	TenantID   string               `json:"tenantId"`
	CustomerID string               `json:"customerId" binding:"required"`
	StaffID    string               `json:"staffId"`
	ServiceID  string               `json:"serviceId" binding:"required"`
	Date       string               `json:"date" binding:"required"`
	Start      int                  `json:"start"`
	End        int                  `json:"end"`
	Duration   int                  `json:"durationMinutes"`
	Price      float64              `json:"price"`
	Note       string               `json:"customerNote"`
	Source     models.BookingSource `json:"-"`
	ActorID    string               `json:"-"`
}

// UpdateBookingRequest carries the mutable fields of a booking. Nil
// pointers leave the current value untouched.
type UpdateBookingRequest struct {
	StaffID             *string `json:"staffId"`
	ServiceID           *string `json:"serviceId"`
	Date                *string `json:"date"`
	Start               *int    `json:"start"`
	Duration            *int    `json:"durationMinutes"`
	CustomerNote        *string `json:"customerNote"`
	InternalNote        *string `json:"internalNote"`
	StoreNoteToCustomer *string `json:"storeNoteToCustomer"`
	ActorID             string  `json:"-"`
}

// BookingService is the authoritative surface for the booking lifecycle.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, tenantID, id string) (*models.Booking, error)
	ListBookingsByDay(ctx context.Context, tenantID, date string) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, tenantID, id string, req UpdateBookingRequest) (*models.Booking, error)
	Confirm(ctx context.Context, tenantID, id, actorID string) (*models.Booking, error)
	StartService(ctx context.Context, tenantID, id, actorID string) (*models.Booking, error)
	Complete(ctx context.Context, tenantID, id, actorID string) (*models.Booking, error)
	Cancel(ctx context.Context, tenantID, id, reason, actorID string) (*models.Booking, error)
	MarkNoShow(ctx context.Context, tenantID, id, actorID string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, tenantID, id, actorID string) error
	CancelByToken(ctx context.Context, token, reason string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo bookingRepo.BookingRepository
	Now  func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
