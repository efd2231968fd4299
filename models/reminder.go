package models

// ReminderPayload is the body of a queued reminder:send task.
type ReminderPayload struct {
	TenantID  string `json:"tenantId"`
	BookingID string `json:"bookingId"`
}
