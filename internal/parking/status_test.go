package parking

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{"unknown", StatusConfirmed, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	if !StatusCompleted.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Error("completed and cancelled are terminal")
	}
	if StatusPending.IsTerminal() {
		t.Error("pending is not terminal")
	}
	if !StatusConfirmed.CanBeCancelled() || StatusCompleted.CanBeCancelled() {
		t.Error("CanBeCancelled mismatch")
	}
	if BookingStatus("archived").IsValid() {
		t.Error("archived is not a status")
	}
}
