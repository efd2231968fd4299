package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "bookwell/database/repository/booking"
	"bookwell/models"

	"go.uber.org/zap"
)

// SelfServiceCancelReason is stamped when a customer cancels through
// the public token link without giving a reason.
const SelfServiceCancelReason = "customer self-service"

// CancelByToken resolves an opaque cancel token and applies the cancel
// transition. The token is the sole capability; no authentication is
// involved. An unknown or soft-deleted booking yields *NotFoundError,
// a terminal booking *NotCancellableError.
func (s *DefaultBookingService) CancelByToken(ctx context.Context, token, reason string) (*models.Booking, error) {
	if token == "" {
		return nil, &NotFoundError{Resource: "cancel token", Key: token}
	}

	b, err := s.Repo.GetByCancelToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "cancel token", Key: token}
		}
		return nil, err
	}

	if !b.IsCancellable() {
		return nil, &NotCancellableError{Status: b.Status}
	}

	if reason == "" {
		reason = SelfServiceCancelReason
	}
	now := s.now()
	b.Status = models.StatusCancelled
	b.CancelReason = reason
	b.CancelledAt = &now
	b.LastModifiedBy = "customer"

	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to persist self-service cancellation: %w", err)
	}

	zap.L().Info("booking cancelled via token",
		zap.String("tenantId", b.TenantID),
		zap.String("bookingId", b.ID),
	)
	return b, nil
}
