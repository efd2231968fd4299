package models

import "time"

// Tenant is an isolated business account. All bookings, sessions and
// catalog entries are partitioned by TenantID.
type Tenant struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`

	// Reminder configuration consumed by the dispatch scheduler.
	EnableBookingReminder bool `bson:"enableBookingReminder" json:"enableBookingReminder"`
	ReminderHoursBefore   int  `bson:"reminderHoursBefore" json:"reminderHoursBefore"`
	EnableSMSReminder     bool `bson:"enableSmsReminder" json:"enableSmsReminder"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReminderSettings is the mutable subset of tenant configuration
// exposed on the admin surface.
type ReminderSettings struct {
	EnableBookingReminder bool `json:"enableBookingReminder"`
	ReminderHoursBefore   int  `json:"reminderHoursBefore" binding:"min=1,max=72"`
	EnableSMSReminder     bool `json:"enableSmsReminder"`
}
