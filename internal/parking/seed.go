package parking

import (
	"fmt"
	"time"
)

// IST is the zone the sample data is recorded in
var IST = time.FixedZone("IST", 5*3600+1800)

// SeedSet is the startup data set
type SeedSet struct {
	Locations []Location
	Slots     []Slot
	Bookings  []Booking
	Payments  []Payment
	Feedback  []Feedback
}

// SeedData builds a fresh copy of the sample data. Slots occupied by active
// sample bookings start out unavailable.
func SeedData() SeedSet {
	locations := seedLocations()
	bookings := seedBookings()

	slots := make([]Slot, 0)
	for _, loc := range locations {
		slots = append(slots, GenerateSlots(loc.ID, loc.TotalSlots, loc.AvailableSlots)...)
	}

	held := make(map[string]bool)
	for _, b := range bookings {
		if b.HoldsSlot() {
			held[b.SlotID] = true
		}
	}
	for i := range slots {
		if held[slots[i].ID] {
			slots[i].IsAvailable = false
			slots[i].IsReserved = true
		}
	}

	return SeedSet{
		Locations: locations,
		Slots:     slots,
		Bookings:  bookings,
		Payments:  seedPayments(),
		Feedback:  seedFeedback(),
	}
}

// GenerateSlots lays out the slots of a location. The first `available`
// slots are free and the next twenty are reserved.
func GenerateSlots(locationID string, total, available int) []Slot {
	slots := make([]Slot, 0, total)
	for i := 1; i <= total; i++ {
		floor := i/50 + 1
		slots = append(slots, Slot{
			ID:          fmt.Sprintf("slot-%s-%d", locationID, i),
			LocationID:  locationID,
			Number:      fmt.Sprintf("%d%c-%d", floor, rune('A'+i%26), i%99+1),
			Type:        slotTypeFor(i),
			Floor:       floor,
			IsAvailable: i <= available,
			IsReserved:  i > available && i <= available+20,
		})
	}
	return slots
}

func slotTypeFor(i int) SlotType {
	switch {
	case i%10 == 0:
		return SlotTypeHandicapped
	case i%8 == 0:
		return SlotTypeEV
	case i%5 == 0:
		return SlotTypeLarge
	case i%3 == 0:
		return SlotTypeCompact
	default:
		return SlotTypeStandard
	}
}

func at(year int, month time.Month, day, hour, minute, sec int) time.Time {
	return time.Date(year, month, day, hour, minute, sec, 0, IST)
}

const unsplash = "https://images.unsplash.com/"

func seedLocations() []Location {
	return []Location{
		{
			ID:             "loc-1",
			Name:           "Connaught Place Parking",
			Address:        "P Block, Connaught Place",
			Area:           "Connaught Place",
			City:           "New Delhi",
			TotalSlots:     150,
			AvailableSlots: 42,
			PricePerHour:   80,
			Image:          unsplash + "photo-1487958449943-2429e8be8625",
			Amenities:      []string{"24/7 Security", "CCTV", "EV Charging", "Covered Parking"},
			Coordinates:    Coordinates{Lat: 28.6315, Lng: 77.2167},
		},
		{
			ID:             "loc-2",
			Name:           "Cyber Hub Parking",
			Address:        "DLF Cyber City, Phase 2",
			Area:           "Gurugram",
			City:           "Gurugram",
			TotalSlots:     200,
			AvailableSlots: 75,
			PricePerHour:   100,
			Image:          unsplash + "photo-1466442929976-97f336a657be",
			Amenities:      []string{"24/7 Security", "CCTV", "Car Wash", "Valet Parking"},
			Coordinates:    Coordinates{Lat: 28.4952, Lng: 77.0936},
		},
		{
			ID:             "loc-3",
			Name:           "Noida Sector 18 Parking",
			Address:        "Sector 18, Noida",
			Area:           "Sector 18",
			City:           "Noida",
			TotalSlots:     180,
			AvailableSlots: 30,
			PricePerHour:   60,
			Image:          unsplash + "photo-1433086966358-54859d0ed716",
			Amenities:      []string{"CCTV", "Wheelchair Access", "Restrooms"},
			Coordinates:    Coordinates{Lat: 28.5708, Lng: 77.3219},
		},
		{
			ID:             "loc-4",
			Name:           "Select Citywalk Parking",
			Address:        "A-3, District Centre, Saket",
			Area:           "Saket",
			City:           "New Delhi",
			TotalSlots:     250,
			AvailableSlots: 80,
			PricePerHour:   120,
			Image:          unsplash + "photo-1460925895917-afdab827c52f",
			Amenities:      []string{"24/7 Security", "CCTV", "Car Wash", "EV Charging", "Valet"},
			Coordinates:    Coordinates{Lat: 28.5292, Lng: 77.2197},
		},
	}
}

func seedBookings() []Booking {
	return []Booking{
		{
			ID:            "booking-1",
			UserID:        "user-1",
			UserName:      "Rahul Sharma",
			VehicleNumber: "DL01AB1234",
			LocationID:    "loc-1",
			LocationName:  "Connaught Place Parking",
			SlotID:        "slot-loc-1-5",
			SlotNumber:    "1E-5",
			BookingTime:   at(2023, time.May, 15, 10, 30, 0),
			StartTime:     at(2023, time.May, 15, 15, 0, 0),
			EndTime:       at(2023, time.May, 15, 18, 0, 0),
			Duration:      3,
			Amount:        240,
			Status:        StatusCompleted,
			PaymentID:     "pay-1",
			PaymentMethod: PaymentMethodCreditCard,
		},
		{
			ID:            "booking-2",
			UserID:        "user-1",
			UserName:      "Rahul Sharma",
			VehicleNumber: "DL01AB1234",
			LocationID:    "loc-2",
			LocationName:  "Cyber Hub Parking",
			SlotID:        "slot-loc-2-10",
			SlotNumber:    "1J-10",
			BookingTime:   at(2023, time.May, 18, 9, 15, 0),
			StartTime:     at(2023, time.May, 18, 14, 0, 0),
			EndTime:       at(2023, time.May, 18, 16, 0, 0),
			Duration:      2,
			Amount:        200,
			Status:        StatusConfirmed,
			PaymentID:     "pay-2",
			PaymentMethod: PaymentMethodUPI,
		},
		{
			ID:            "booking-3",
			UserID:        "user-2",
			UserName:      "Priya Singh",
			VehicleNumber: "HR26CD5678",
			LocationID:    "loc-3",
			LocationName:  "Noida Sector 18 Parking",
			SlotID:        "slot-loc-3-8",
			SlotNumber:    "1H-8",
			BookingTime:   at(2023, time.May, 20, 11, 45, 0),
			StartTime:     at(2023, time.May, 20, 16, 0, 0),
			EndTime:       at(2023, time.May, 20, 19, 0, 0),
			Duration:      3,
			Amount:        180,
			Status:        StatusConfirmed,
			PaymentID:     "pay-3",
			PaymentMethod: PaymentMethodDebitCard,
		},
	}
}

func seedPayments() []Payment {
	return []Payment{
		{
			ID:            "pay-1",
			BookingID:     "booking-1",
			UserID:        "user-1",
			Amount:        240,
			Status:        PaymentStatusPaid,
			PaymentMethod: PaymentMethodCreditCard,
			TransactionID: "txn-12345",
			Timestamp:     at(2023, time.May, 15, 10, 32, 15),
		},
		{
			ID:            "pay-2",
			BookingID:     "booking-2",
			UserID:        "user-1",
			Amount:        200,
			Status:        PaymentStatusPaid,
			PaymentMethod: PaymentMethodUPI,
			TransactionID: "txn-23456",
			Timestamp:     at(2023, time.May, 18, 9, 17, 30),
		},
		{
			ID:            "pay-3",
			BookingID:     "booking-3",
			UserID:        "user-2",
			Amount:        180,
			Status:        PaymentStatusPaid,
			PaymentMethod: PaymentMethodDebitCard,
			TransactionID: "txn-34567",
			Timestamp:     at(2023, time.May, 20, 11, 48, 22),
		},
	}
}

func seedFeedback() []Feedback {
	return []Feedback{
		{
			ID:           "feedback-1",
			UserID:       "user-1",
			UserName:     "Rahul Sharma",
			BookingID:    "booking-1",
			LocationID:   "loc-1",
			LocationName: "Connaught Place Parking",
			Rating:       4,
			Comment:      "Great parking facility. Security was good and the staff was helpful.",
			Timestamp:    at(2023, time.May, 15, 19, 10, 0),
			Status:       FeedbackStatusVisible,
		},
		{
			ID:            "feedback-2",
			UserID:        "user-2",
			UserName:      "Priya Singh",
			BookingID:     "booking-3",
			LocationID:    "loc-3",
			LocationName:  "Noida Sector 18 Parking",
			Rating:        3,
			Comment:       "The parking was okay, but finding the entrance was a bit confusing.",
			Timestamp:     at(2023, time.May, 20, 19, 45, 0),
			Status:        FeedbackStatusVisible,
			AdminResponse: "Thank you for your feedback. We're improving our signage.",
		},
	}
}
