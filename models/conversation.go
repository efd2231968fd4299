package models

import "time"

// ConversationState is the current step of the chat intake dialog.
type ConversationState string

const (
	StateIdle             ConversationState = "idle"
	StateSelectingService ConversationState = "selecting_service"
	StateSelectingStaff   ConversationState = "selecting_staff"
	StateSelectingDate    ConversationState = "selecting_date"
	StateSelectingTime    ConversationState = "selecting_time"
	StateConfirming       ConversationState = "confirming"
)

// ConversationSession stages a booking across a multi-step chat dialog.
// One session exists per (tenant, chat user); it lives in the session
// store under a 30-minute idle TTL.
type ConversationSession struct {
	TenantID   string `json:"tenantId"`
	ChatUserID string `json:"chatUserId"`
	CustomerID string `json:"customerId,omitempty"`

	State          ConversationState `json:"state"`
	PreviousState  ConversationState `json:"previousState,omitempty"`
	StateChangedAt time.Time         `json:"stateChangedAt"`

	ServiceID       string  `json:"serviceId,omitempty"`
	ServiceName     string  `json:"serviceName,omitempty"`
	ServiceDuration int     `json:"serviceDuration,omitempty"`
	ServicePrice    float64 `json:"servicePrice,omitempty"`
	StaffID         string  `json:"staffId,omitempty"`
	StaffName       string  `json:"staffName,omitempty"`
	Date            string  `json:"date,omitempty"`
	Start           int     `json:"start,omitempty"`
	TimeChosen      bool    `json:"timeChosen,omitempty"`
}

// TransitionTo records the current state as the single undo slot and
// stamps the change time before moving to next.
func (s *ConversationSession) TransitionTo(next ConversationState, now time.Time) {
	s.PreviousState = s.State
	s.State = next
	s.StateChangedAt = now
}

// GoBack restores the one recorded prior state. A second consecutive
// call is a no-op; only one level of undo is kept.
func (s *ConversationSession) GoBack(now time.Time) bool {
	if s.PreviousState == "" {
		return false
	}
	s.State = s.PreviousState
	s.PreviousState = ""
	s.StateChangedAt = now
	return true
}

// Reset forces the dialog back to idle and clears every staged selection.
func (s *ConversationSession) Reset(now time.Time) {
	s.State = StateIdle
	s.PreviousState = ""
	s.StateChangedAt = now
	s.ServiceID = ""
	s.ServiceName = ""
	s.ServiceDuration = 0
	s.ServicePrice = 0
	s.StaffID = ""
	s.StaffName = ""
	s.Date = ""
	s.Start = 0
	s.TimeChosen = false
}

// CanConfirmBooking holds when service, date and time are all staged.
// Staff is optional ("no preference").
func (s *ConversationSession) CanConfirmBooking() bool {
	return s.ServiceID != "" && s.Date != "" && s.TimeChosen
}
