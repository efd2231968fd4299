package booking

import (
	"testing"

	"bookwell/models"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name   string
		action string
		from   models.BookingStatus
		want   bool
	}{
		{"confirm from pending", ActionConfirm, models.StatusPending, true},
		{"confirm from confirmed", ActionConfirm, models.StatusConfirmed, false},
		{"start from confirmed", ActionStartService, models.StatusConfirmed, true},
		{"start from pending", ActionStartService, models.StatusPending, false},
		{"complete from confirmed", ActionComplete, models.StatusConfirmed, true},
		{"complete from in_progress", ActionComplete, models.StatusInProgress, true},
		{"complete from pending", ActionComplete, models.StatusPending, false},
		{"cancel from pending", ActionCancel, models.StatusPending, true},
		{"cancel from confirmed", ActionCancel, models.StatusConfirmed, true},
		{"cancel from in_progress", ActionCancel, models.StatusInProgress, true},
		{"no-show from confirmed", ActionNoShow, models.StatusConfirmed, true},
		{"no-show from pending", ActionNoShow, models.StatusPending, false},
		{"update from pending", ActionUpdate, models.StatusPending, true},
		{"unknown action", "teleport", models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTransition(tt.action, tt.from))
		})
	}
}

// Terminal statuses admit no action at all.
func TestTerminalStatusesAreAbsorbing(t *testing.T) {
	terminal := []models.BookingStatus{
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusNoShow,
	}
	actions := []string{
		ActionConfirm, ActionStartService, ActionComplete,
		ActionCancel, ActionNoShow, ActionUpdate,
	}

	for _, status := range terminal {
		for _, action := range actions {
			assert.Falsef(t, ValidTransition(action, status),
				"action %q must not fire from %q", action, status)
		}
	}
}

func TestGuardReturnsTypedError(t *testing.T) {
	b := &models.Booking{Status: models.StatusCompleted}

	err := guard(ActionCancel, b)

	var illegal *IllegalTransitionError
	assert.ErrorAs(t, err, &illegal)
	assert.Equal(t, ActionCancel, illegal.Action)
	assert.Equal(t, models.StatusCompleted, illegal.From)
}
