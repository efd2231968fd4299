package booking

import (
	"context"
	"testing"
	"time"

	"bookwell/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelByTokenUnknownToken(t *testing.T) {
	svc, _ := newTestService(time.Now())

	_, err := svc.CancelByToken(context.Background(), "no-such-token", "")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "cancel token", notFound.Resource)
}

func TestCancelByTokenEmptyToken(t *testing.T) {
	svc, _ := newTestService(time.Now())

	_, err := svc.CancelByToken(context.Background(), "", "")

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCancelByTokenSuccess(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, baseCreateRequest())
	require.NoError(t, err)

	b, err := svc.CancelByToken(ctx, created.CancelToken, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)
	assert.Equal(t, SelfServiceCancelReason, b.CancelReason)
	assert.Equal(t, "customer", b.LastModifiedBy)
	require.NotNil(t, b.CancelledAt)
	assert.True(t, b.CancelledAt.Equal(now))
}

func TestCancelByTokenCustomReason(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, baseCreateRequest())
	require.NoError(t, err)

	b, err := svc.CancelByToken(ctx, created.CancelToken, "running late, rebooking")
	require.NoError(t, err)
	assert.Equal(t, "running late, rebooking", b.CancelReason)
}

func TestCancelByTokenTerminalBooking(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, baseCreateRequest())
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, created.TenantID, created.ID, "staff-1")
	require.NoError(t, err)
	_, err = svc.Complete(ctx, created.TenantID, created.ID, "staff-1")
	require.NoError(t, err)

	_, err = svc.CancelByToken(ctx, created.CancelToken, "")
	var notCancellable *NotCancellableError
	require.ErrorAs(t, err, &notCancellable)
	assert.Equal(t, models.StatusCompleted, notCancellable.Status)
}

func TestCancelByTokenIdempotencyIsRejected(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, baseCreateRequest())
	require.NoError(t, err)

	_, err = svc.CancelByToken(ctx, created.CancelToken, "")
	require.NoError(t, err)

	// The second use of the same token finds a cancelled booking.
	_, err = svc.CancelByToken(ctx, created.CancelToken, "")
	var notCancellable *NotCancellableError
	assert.ErrorAs(t, err, &notCancellable)
}
