package parking

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// transitions is the complete set of legal booking status changes.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// IsValid checks if the booking status is valid
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanBeCancelled checks if a booking with this status can be cancelled
func (s BookingStatus) CanBeCancelled() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// IsTerminal reports whether no further transition exists
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}
