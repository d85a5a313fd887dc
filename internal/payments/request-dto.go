package payments

type PayRequest struct {
	BookingID     string `json:"bookingId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=credit_card debit_card net_banking upi wallet"`
}
