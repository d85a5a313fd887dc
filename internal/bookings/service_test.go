package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/internal/slots"
)

type vehicleMap map[string]string

func (m vehicleMap) VehicleNumber(_ context.Context, userID string) string {
	return m[userID]
}

var (
	rahul = Caller{UserID: "user-1", Name: "Rahul Sharma"}
	priya = Caller{UserID: "user-2", Name: "Priya Singh"}
	admin = Caller{UserID: "admin-1", Name: "Admin User", IsAdmin: true}
)

type fixture struct {
	store *parking.Store
	holds slots.HoldManager
	svc   Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := parking.NewSeeded()
	holds := slots.NewMemoryHoldManager()
	guard := slots.NewService(store, holds, 10*time.Minute)
	vehicles := vehicleMap{"user-1": "DL01AB1234", "user-2": "HR26CD5678"}
	return fixture{
		store: store,
		holds: holds,
		svc:   NewService(store, guard, vehicles, "Unknown"),
	}
}

func bookingRequest(slotID string) CreateBookingRequest {
	return CreateBookingRequest{
		LocationID: "loc-1",
		SlotID:     slotID,
		StartTime:  time.Date(2024, time.March, 1, 10, 0, 0, 0, parking.IST),
		Duration:   2,
	}
}

func TestCreateBookingComputesAmountAndVehicle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, err := f.svc.CreateBooking(ctx, rahul, bookingRequest("slot-loc-1-1"))
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if b.Amount != 160 {
		t.Errorf("Amount = %v, want 160", b.Amount)
	}
	if b.VehicleNumber != "DL01AB1234" {
		t.Errorf("VehicleNumber = %q, want registered vehicle", b.VehicleNumber)
	}
	if b.Status != parking.StatusPending {
		t.Errorf("Status = %q, want pending", b.Status)
	}

	req := bookingRequest("slot-loc-1-2")
	req.VehicleNumber = " dl02xy0001 "
	b, err = f.svc.CreateBooking(ctx, rahul, req)
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if b.VehicleNumber != "DL02XY0001" {
		t.Errorf("VehicleNumber = %q, want request value", b.VehicleNumber)
	}

	stranger := Caller{UserID: "user-9", Name: "Walk In"}
	b, err = f.svc.CreateBooking(ctx, stranger, bookingRequest("slot-loc-1-3"))
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if b.VehicleNumber != "Unknown" {
		t.Errorf("VehicleNumber = %q, want Unknown", b.VehicleNumber)
	}
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		want   error
	}{
		{"zero start", func(r *CreateBookingRequest) { r.StartTime = time.Time{} }, ErrInvalidStartTime},
		{"zero duration", func(r *CreateBookingRequest) { r.Duration = 0 }, parking.ErrInvalidDuration},
		{"unknown location", func(r *CreateBookingRequest) { r.LocationID = "loc-9" }, parking.ErrLocationNotFound},
		{"unavailable slot", func(r *CreateBookingRequest) { r.SlotID = "slot-loc-1-100" }, parking.ErrSlotUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookingRequest("slot-loc-1-1")
			tt.mutate(&req)
			if _, err := f.svc.CreateBooking(ctx, rahul, req); !errors.Is(err, tt.want) {
				t.Errorf("CreateBooking() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateBookingRespectsHolds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.holds.Hold(ctx, "slot-loc-1-1", "loc-1", priya.UserID, time.Minute); err != nil {
		t.Fatalf("Hold() error = %v", err)
	}

	if _, err := f.svc.CreateBooking(ctx, rahul, bookingRequest("slot-loc-1-1")); !errors.Is(err, slots.ErrSlotHeld) {
		t.Fatalf("other user's booking error = %v, want ErrSlotHeld", err)
	}

	if _, err := f.svc.CreateBooking(ctx, priya, bookingRequest("slot-loc-1-1")); err != nil {
		t.Fatalf("holder's booking error = %v", err)
	}
	holders, err := f.holds.Holders(ctx, []string{"slot-loc-1-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(holders) != 0 {
		t.Errorf("hold should be consumed by the booking, holders = %v", holders)
	}
}

func TestBookingOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.svc.GetBooking(ctx, rahul, "booking-3"); !errors.Is(err, ErrForbidden) {
		t.Errorf("GetBooking() by non-owner error = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.GetBooking(ctx, admin, "booking-3"); err != nil {
		t.Errorf("GetBooking() by admin error = %v", err)
	}
	if _, err := f.svc.GetBooking(ctx, rahul, "booking-99"); !errors.Is(err, parking.ErrBookingNotFound) {
		t.Errorf("GetBooking() unknown error = %v", err)
	}

	if _, err := f.svc.CancelBooking(ctx, rahul, "booking-3"); !errors.Is(err, ErrForbidden) {
		t.Errorf("CancelBooking() by non-owner error = %v, want ErrForbidden", err)
	}
	b, err := f.svc.CancelBooking(ctx, priya, "booking-3")
	if err != nil {
		t.Fatalf("CancelBooking() by owner error = %v", err)
	}
	if b.Status != parking.StatusCancelled {
		t.Errorf("Status = %q, want cancelled", b.Status)
	}
	slot, _ := f.store.Slot("slot-loc-3-8")
	if !slot.IsAvailable {
		t.Error("cancelled booking should free its slot")
	}
}

func TestListAllBookingsFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name   string
		filter AdminFilter
		want   []string
	}{
		{"all", AdminFilter{}, []string{"booking-1", "booking-2", "booking-3"}},
		{"status all", AdminFilter{Status: "all"}, []string{"booking-1", "booking-2", "booking-3"}},
		{"confirmed", AdminFilter{Status: "Confirmed"}, []string{"booking-2", "booking-3"}},
		{"user name", AdminFilter{Search: "priya"}, []string{"booking-3"}},
		{"vehicle", AdminFilter{Search: "dl01"}, []string{"booking-1", "booking-2"}},
		{"location name", AdminFilter{Search: "cyber hub"}, []string{"booking-2"}},
		{"id and status", AdminFilter{Search: "booking-1", Status: "cancelled"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.ListAllBookings(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListAllBookings() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d bookings, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("got[%d] = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}

	if _, err := f.svc.ListAllBookings(ctx, AdminFilter{Status: "parked"}); !errors.Is(err, ErrInvalidStatusFilter) {
		t.Errorf("bad status error = %v, want ErrInvalidStatusFilter", err)
	}
}

func TestCompleteExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// booking-2 ended 18 May 16:00, booking-3 ends 20 May 19:00
	now := time.Date(2023, time.May, 19, 12, 0, 0, 0, parking.IST)
	n, err := f.svc.CompleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("CompleteExpired() error = %v", err)
	}
	if n != 1 {
		t.Errorf("completed = %d, want 1", n)
	}

	b2, _ := f.store.Booking("booking-2")
	b3, _ := f.store.Booking("booking-3")
	if b2.Status != parking.StatusCompleted {
		t.Errorf("booking-2 status = %q, want completed", b2.Status)
	}
	if b3.Status != parking.StatusConfirmed {
		t.Errorf("booking-3 status = %q, want confirmed", b3.Status)
	}

	if n, _ := f.svc.CompleteExpired(ctx, now); n != 0 {
		t.Errorf("second run completed = %d, want 0", n)
	}
}

func TestCompletionSchedulerRunOnce(t *testing.T) {
	f := newFixture(t)
	s := NewCompletionScheduler(f.svc, "@every 1m")
	s.now = func() time.Time { return time.Date(2023, time.June, 1, 0, 0, 0, 0, parking.IST) }

	s.RunOnce()

	for _, id := range []string{"booking-2", "booking-3"} {
		b, _ := f.store.Booking(id)
		if b.Status != parking.StatusCompleted {
			t.Errorf("%s status = %q, want completed", id, b.Status)
		}
	}
}

func TestCompletionSchedulerRejectsBadSchedule(t *testing.T) {
	f := newFixture(t)
	s := NewCompletionScheduler(f.svc, "every minute")
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("Start() should reject an invalid schedule")
	}
}
