package bookings

import (
	"context"

	"letsparkit/internal/parking"
)

// Repository is the part of the domain store the booking flow uses
type Repository interface {
	Location(id string) (parking.Location, error)
	Booking(id string) (parking.Booking, error)
	Bookings() []parking.Booking
	BookingsByUser(userID string) []parking.Booking
	CreateBooking(ctx context.Context, data parking.NewBooking) (parking.Booking, error)
	CancelBooking(ctx context.Context, id string) (parking.Booking, error)
	CompleteBooking(ctx context.Context, id string) (parking.Booking, error)
}

// SlotGuard enforces slot holds around booking creation
type SlotGuard interface {
	CheckBookable(ctx context.Context, slotID, userID string) error
	ConsumeHold(ctx context.Context, slotID, userID string)
}

// VehicleLookup finds a user's registered vehicle number
type VehicleLookup interface {
	VehicleNumber(ctx context.Context, userID string) string
}
