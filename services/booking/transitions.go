package booking

import "bookwell/models"

// Lifecycle actions.
const (
	ActionConfirm      = "confirm"
	ActionStartService = "start_service"
	ActionComplete     = "complete"
	ActionCancel       = "cancel"
	ActionNoShow       = "no_show"
	ActionUpdate       = "update"
)

// transitionMap lists, per action, the statuses the action may fire
// from. Terminal statuses appear nowhere, so they are absorbing.
var transitionMap = map[string][]models.BookingStatus{
	ActionConfirm:      {models.StatusPending},
	ActionStartService: {models.StatusConfirmed},
	ActionComplete:     {models.StatusConfirmed, models.StatusInProgress},
	ActionCancel:       {models.StatusPending, models.StatusConfirmed, models.StatusInProgress},
	ActionNoShow:       {models.StatusConfirmed},
	ActionUpdate:       {models.StatusPending, models.StatusConfirmed, models.StatusInProgress},
}

// ValidTransition reports whether action may fire from the given status.
func ValidTransition(action string, from models.BookingStatus) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

// guard returns a typed error when action may not fire from b's status.
func guard(action string, b *models.Booking) error {
	if !ValidTransition(action, b.Status) {
		return &IllegalTransitionError{Action: action, From: b.Status}
	}
	return nil
}
