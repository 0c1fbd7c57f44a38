package domain

import "time"

// Counter deltas for attendee lifecycle events that are not status transitions.
// Admission consumes a booking whatever the initial status is, and deletion releases one the same way.
const (
	AdmissionDelta = 1
	DeletionDelta  = -1
)

// CheckAdmission decides whether a new registration may be admitted to event at time now.
// Rules apply in order and the first failing one wins.
func CheckAdmission(event *Event, now time.Time) error {
	if event == nil {
		return ErrNotFound
	}
	if !event.IsActive {
		return ErrEventInactive
	}
	if event.CurrentBookings >= event.MaxCapacity {
		return ErrEventFull
	}
	if !event.StartDate.After(now) {
		return ErrEventAlreadyStarted
	}
	return nil
}

// StatusDelta returns the booking counter adjustment for a registration status transition.
// Only transitions into or out of confirmed move the counter.
func StatusDelta(from, to RegistrationStatus) int {
	switch {
	case from == to:
		return 0
	case to == StatusConfirmed:
		return 1
	case from == StatusConfirmed:
		return -1
	default:
		return 0
	}
}

// ApplyDelta returns the counter value after delta, floored at zero.
// clamped is true when the floor was hit, meaning the stored counter was already too low.
func ApplyDelta(current, delta int) (next int, clamped bool) {
	next = current + delta
	if next < 0 {
		return 0, true
	}
	return next, false
}
