package slots

import (
	"time"

	"letsparkit/internal/parking"
)

// Hold is a short exclusive claim on a slot while its holder fills in a booking
type Hold struct {
	ID         string    `json:"id"`
	SlotID     string    `json:"slotId"`
	LocationID string    `json:"locationId"`
	UserID     string    `json:"userId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// SlotResponse is a slot plus its current hold state
type SlotResponse struct {
	parking.Slot
	IsHeld   bool `json:"isHeld"`
	HeldByMe bool `json:"heldByMe,omitempty"`
}

// SlotFilter narrows a slot listing; zero values match everything
type SlotFilter struct {
	Type      parking.SlotType
	Available *bool
}

func (f SlotFilter) matches(s parking.Slot) bool {
	if f.Type != "" && s.Type != f.Type {
		return false
	}
	if f.Available != nil && s.IsAvailable != *f.Available {
		return false
	}
	return true
}
