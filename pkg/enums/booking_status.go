package enums

import "fmt"

// BookingStatus tracks a booking through the checkout lifecycle.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusFailed    BookingStatus = "failed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusFailed,
	BookingStatusCancelled,
}

// String implements fmt.Stringer.
func (b BookingStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingStatus.
func (b BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (b BookingStatus) IsTerminal() bool {
	return b == BookingStatusFailed || b == BookingStatusCancelled
}

// CanTransitionTo enforces the booking state machine: Pending may fail or
// confirm once, Confirmed may only be cancelled, Failed and Cancelled are final.
func (b BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch b {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusFailed
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	default:
		return false
	}
}

// ParseBookingStatus converts raw input into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}
