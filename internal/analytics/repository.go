package analytics

import "letsparkit/internal/parking"

// Repository is the read side of the domain store the dashboard aggregates
type Repository interface {
	Locations() []parking.Location
	Bookings() []parking.Booking
	Payments() []parking.Payment
	Feedback() []parking.Feedback
}
