package bookings

import "letsparkit/internal/parking"

type TicketVerificationResponse struct {
	Valid   bool             `json:"valid"`
	Reason  string           `json:"reason,omitempty"`
	Booking *parking.Booking `json:"booking,omitempty"`
}
