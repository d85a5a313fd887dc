package bookings

import "time"

type CreateBookingRequest struct {
	LocationID    string    `json:"locationId" validate:"required"`
	SlotID        string    `json:"slotId" validate:"required"`
	StartTime     time.Time `json:"startTime" validate:"required"`
	Duration      int       `json:"duration" validate:"required,min=1,max=24"`
	VehicleNumber string    `json:"vehicleNumber,omitempty" validate:"omitempty,max=20"`
}

type VerifyTicketRequest struct {
	Payload string `json:"payload" validate:"required"`
}
