package notification

import (
	"context"
	"fmt"

	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"

	"firebase.google.com/go/v4/messaging"
)

// DefaultNotificationService is the production implementation: FCM for
// push, an HTTP SMS provider for the secondary channel.
type DefaultNotificationService struct {
	Catalog catalogRepo.CatalogRepository
	FCM     *messaging.Client
	SMS     SMSClient
}

func NewDefaultNotificationService(catalog catalogRepo.CatalogRepository, fcm *messaging.Client, sms SMSClient) (*DefaultNotificationService, error) {
	if catalog == nil {
		return nil, fmt.Errorf("notification service initialization error: catalog repository is nil")
	}
	return &DefaultNotificationService{Catalog: catalog, FCM: fcm, SMS: sms}, nil
}

// SendBookingReminder looks up the customer's FCM token and sends the
// reminder push.
func (s *DefaultNotificationService) SendBookingReminder(ctx context.Context, tenant *models.Tenant, b *models.Booking) error {
	customer, err := s.Catalog.GetCustomer(ctx, b.TenantID, b.CustomerID)
	if err != nil {
		return fmt.Errorf("SendBookingReminder: could not find customer %s: %w", b.CustomerID, err)
	}
	if customer.FCMToken == "" {
		return fmt.Errorf("SendBookingReminder: customer %s has no FCM token", b.CustomerID)
	}

	title := fmt.Sprintf("Reminder from %s", tenant.Name)
	body := fmt.Sprintf("Your appointment is on %s at %02d:%02d.", b.Date, b.Start/60, b.Start%60)

	msg := &messaging.Message{
		Token: customer.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"bookingId": b.ID,
			"date":      b.Date,
		},
	}
	if _, err := s.FCM.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendBookingReminder: push delivery failed for booking %s: %w", b.ID, err)
	}
	return nil
}

// SendBookingReminderSMS delivers the reminder over the SMS provider.
func (s *DefaultNotificationService) SendBookingReminderSMS(ctx context.Context, tenant *models.Tenant, b *models.Booking) error {
	if s.SMS == nil {
		return fmt.Errorf("SendBookingReminderSMS: no SMS provider configured")
	}
	customer, err := s.Catalog.GetCustomer(ctx, b.TenantID, b.CustomerID)
	if err != nil {
		return fmt.Errorf("SendBookingReminderSMS: could not find customer %s: %w", b.CustomerID, err)
	}
	if customer.Phone == "" {
		return fmt.Errorf("SendBookingReminderSMS: customer %s has no phone number", b.CustomerID)
	}

	message := fmt.Sprintf("%s: reminder for your appointment on %s at %02d:%02d.", tenant.Name, b.Date, b.Start/60, b.Start%60)
	if err := s.SMS.SendSMS(ctx, customer.Phone, message); err != nil {
		return fmt.Errorf("SendBookingReminderSMS: delivery failed for booking %s: %w", b.ID, err)
	}
	return nil
}
