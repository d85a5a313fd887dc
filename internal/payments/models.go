package payments

import "letsparkit/internal/parking"

// Caller is the authenticated user paying or browsing payments
type Caller struct {
	UserID  string
	IsAdmin bool
}

// AdminFilter narrows the admin payment listing
type AdminFilter struct {
	Search string // matches payment id, transaction id or booking id
	Status string // "" or "all" matches every status
}

// Stats summarises the payment ledger for the admin reports page
type Stats struct {
	TotalPayments      int                           `json:"totalPayments"`
	SuccessfulPayments int                           `json:"successfulPayments"`
	TotalRevenue       float64                       `json:"totalRevenue"`
	SuccessRate        float64                       `json:"successRate"`   // percent, one decimal
	AverageAmount      float64                       `json:"averageAmount"` // per successful payment
	MethodCounts       map[parking.PaymentMethod]int `json:"methodCounts"`
}
