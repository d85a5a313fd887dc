package parking

import "time"

type SlotType string

const (
	SlotTypeCompact     SlotType = "compact"
	SlotTypeStandard    SlotType = "standard"
	SlotTypeLarge       SlotType = "large"
	SlotTypeHandicapped SlotType = "handicapped"
	SlotTypeEV          SlotType = "ev"
)

// IsValid checks if the slot type is known
func (t SlotType) IsValid() bool {
	switch t {
	case SlotTypeCompact, SlotTypeStandard, SlotTypeLarge, SlotTypeHandicapped, SlotTypeEV:
		return true
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Address        string      `json:"address"`
	Area           string      `json:"area"`
	City           string      `json:"city"`
	TotalSlots     int         `json:"totalSlots"`
	AvailableSlots int         `json:"availableSlots"`
	PricePerHour   float64     `json:"pricePerHour"`
	Image          string      `json:"image"`
	Amenities      []string    `json:"amenities"`
	Coordinates    Coordinates `json:"coordinates"`
}

type Slot struct {
	ID          string   `json:"id"`
	LocationID  string   `json:"locationId"`
	Number      string   `json:"number"`
	Type        SlotType `json:"type"`
	Floor       int      `json:"floor"`
	IsAvailable bool     `json:"isAvailable"`
	IsReserved  bool     `json:"isReserved"`
}

type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	VehicleNumber string        `json:"vehicleNumber"`
	LocationID    string        `json:"locationId"`
	LocationName  string        `json:"locationName"`
	SlotID        string        `json:"slotId"`
	SlotNumber    string        `json:"slotNumber"`
	BookingTime   time.Time     `json:"bookingTime"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	Duration      int           `json:"duration"` // hours
	Amount        float64       `json:"amount"`
	Status        BookingStatus `json:"status"`
	PaymentID     string        `json:"paymentId,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
}

// HoldsSlot reports whether the booking currently occupies its slot
func (b Booking) HoldsSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// IsValid checks if the payment status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodNetBanking PaymentMethod = "net_banking"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

// PaymentMethods lists the accepted methods in display order
var PaymentMethods = []PaymentMethod{
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodNetBanking,
	PaymentMethodUPI,
	PaymentMethodWallet,
}

// IsValid checks if the payment method is accepted
func (m PaymentMethod) IsValid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

type Payment struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"bookingId"`
	UserID        string        `json:"userId"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	TransactionID string        `json:"transactionId"`
	Timestamp     time.Time     `json:"timestamp"`
}

type FeedbackStatus string

const (
	FeedbackStatusVisible FeedbackStatus = "visible"
	FeedbackStatusHidden  FeedbackStatus = "hidden"
	FeedbackStatusFlagged FeedbackStatus = "flagged"
)

// IsValid checks if the feedback status is known
func (s FeedbackStatus) IsValid() bool {
	switch s {
	case FeedbackStatusVisible, FeedbackStatusHidden, FeedbackStatusFlagged:
		return true
	}
	return false
}

type Feedback struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	UserName      string         `json:"userName"`
	BookingID     string         `json:"bookingId,omitempty"`
	LocationID    string         `json:"locationId,omitempty"`
	LocationName  string         `json:"locationName,omitempty"`
	Rating        int            `json:"rating"`
	Comment       string         `json:"comment"`
	Timestamp     time.Time      `json:"timestamp"`
	Status        FeedbackStatus `json:"status"`
	AdminResponse string         `json:"adminResponse,omitempty"`
}

// NewBooking carries the caller-supplied fields of createBooking
type NewBooking struct {
	UserID        string
	UserName      string
	VehicleNumber string
	LocationID    string
	SlotID        string
	StartTime     time.Time
	Duration      int
	Amount        float64
}

// NewPayment carries the caller-supplied fields of recordPayment
type NewPayment struct {
	BookingID     string
	UserID        string
	Amount        float64
	Status        PaymentStatus
	PaymentMethod PaymentMethod
	TransactionID string
}

// NewFeedback carries the caller-supplied fields of createFeedback
type NewFeedback struct {
	UserID     string
	UserName   string
	BookingID  string
	LocationID string
	Rating     int
	Comment    string
	Status     FeedbackStatus
}

// LocationUpdate lists the admin-editable location fields; nil means unchanged
type LocationUpdate struct {
	Name         *string
	Address      *string
	Area         *string
	City         *string
	PricePerHour *float64
	Image        *string
	Amenities    []string
	Coordinates  *Coordinates
}
