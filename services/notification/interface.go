package notification

import (
	"context"

	"bookwell/models"
)

// NotificationService sends booking reminders to customers. The
// primary channel is push; SMS is the tenant-optional secondary channel.
type NotificationService interface {
	SendBookingReminder(ctx context.Context, tenant *models.Tenant, b *models.Booking) error
	SendBookingReminderSMS(ctx context.Context, tenant *models.Tenant, b *models.Booking) error
}
