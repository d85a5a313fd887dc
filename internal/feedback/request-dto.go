package feedback

type CreateFeedbackRequest struct {
	BookingID  string `json:"bookingId,omitempty"`
	LocationID string `json:"locationId,omitempty"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required,max=1000"`
}

type AdminResponseRequest struct {
	Response string `json:"response" validate:"required,max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=visible hidden flagged"`
}
