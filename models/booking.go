package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// BookingSource records which surface created the booking.
type BookingSource string

const (
	SourceStaff  BookingSource = "staff"
	SourceChat   BookingSource = "chat"
	SourcePublic BookingSource = "public"
)

// Booking represents a single reservation, always scoped to a tenant.
// Date is "YYYY-MM-DD"; Start/End are minutes from midnight.
type Booking struct {
	ID       string `bson:"id" json:"id"`
	TenantID string `bson:"tenantId" json:"tenantId"`

	CustomerID string `bson:"customerId" json:"customerId"`
	StaffID    string `bson:"staffId,omitempty" json:"staffId,omitempty"` // empty = no staff preference
	ServiceID  string `bson:"serviceId" json:"serviceId"`

	Date            string  `bson:"date" json:"date"`
	Start           int     `bson:"start" json:"start"`
	End             int     `bson:"end" json:"end"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64 `bson:"price" json:"price"`

	Status BookingStatus `bson:"status" json:"status"`

	CustomerNote        string `bson:"customerNote,omitempty" json:"customerNote,omitempty"`
	InternalNote        string `bson:"internalNote,omitempty" json:"-"`
	StoreNoteToCustomer string `bson:"storeNoteToCustomer,omitempty" json:"storeNoteToCustomer,omitempty"`

	CancelReason string     `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelToken  string     `bson:"cancelToken" json:"-"` // set once at creation, never regenerated

	ReminderSentAt *time.Time `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`

	Source         BookingSource `bson:"source" json:"source"`
	LastModifiedBy string        `bson:"lastModifiedBy,omitempty" json:"lastModifiedBy,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
	DeletedAt      *time.Time    `bson:"deletedAt,omitempty" json:"-"`
}

// IsTerminal reports whether the booking reached an absorbing state.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsCancellable reports whether the cancel transition is still allowed.
func (b *Booking) IsCancellable() bool {
	return !b.IsTerminal()
}

// StartsAt combines Date and Start into an absolute time in loc.
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", b.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(b.Start) * time.Minute), nil
}
