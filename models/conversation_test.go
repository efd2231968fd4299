package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionGoBackKeepsOneLevel(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	s := &ConversationSession{State: StateSelectingStaff}

	s.TransitionTo(StateSelectingTime, now)
	assert.Equal(t, StateSelectingStaff, s.PreviousState)

	assert.True(t, s.GoBack(now))
	assert.Equal(t, StateSelectingStaff, s.State)
	assert.Empty(t, s.PreviousState)

	// The single undo slot is spent; a second call changes nothing.
	assert.False(t, s.GoBack(now))
	assert.Equal(t, StateSelectingStaff, s.State)
}

func TestSessionResetClearsSelections(t *testing.T) {
	now := time.Now()
	s := &ConversationSession{
		State:         StateConfirming,
		PreviousState: StateSelectingTime,
		ServiceID:     "svc-1",
		StaffID:       "staff-1",
		Date:          "2026-09-01",
		Start:         600,
		TimeChosen:    true,
	}

	s.Reset(now)

	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, s.PreviousState)
	assert.Empty(t, s.ServiceID)
	assert.Empty(t, s.Date)
	assert.False(t, s.TimeChosen)
	assert.False(t, s.CanConfirmBooking())
}

func TestCanConfirmBooking(t *testing.T) {
	s := &ConversationSession{ServiceID: "svc-1", Date: "2026-09-01", TimeChosen: true}
	assert.True(t, s.CanConfirmBooking())

	// Staff is optional; any required selection missing blocks confirm.
	s.TimeChosen = false
	assert.False(t, s.CanConfirmBooking())
}
