package feedback

import (
	"context"
	"errors"
	"testing"

	"letsparkit/internal/parking"
)

func TestCreateFeedback(t *testing.T) {
	ctx := context.Background()
	store := parking.NewSeeded()
	svc := NewService(store)
	rahul := Caller{UserID: "user-1", Name: "Rahul Sharma"}

	entry, err := svc.Create(ctx, rahul, CreateFeedbackRequest{BookingID: "booking-2", Rating: 5, Comment: "  Easy entry  "})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.LocationID != "loc-2" || entry.LocationName != "Cyber Hub Parking" {
		t.Errorf("location copied from booking = %s %q", entry.LocationID, entry.LocationName)
	}
	if entry.Comment != "Easy entry" || entry.Status != parking.FeedbackStatusVisible {
		t.Errorf("entry = %+v", entry)
	}

	entry, err = svc.Create(ctx, rahul, CreateFeedbackRequest{LocationID: "loc-4", Rating: 2, Comment: "Crowded"})
	if err != nil {
		t.Fatalf("Create() by location error = %v", err)
	}
	if entry.BookingID != "" || entry.LocationID != "loc-4" {
		t.Errorf("entry = %+v", entry)
	}

	tests := []struct {
		name string
		req  CreateFeedbackRequest
		want error
	}{
		{"foreign booking", CreateFeedbackRequest{BookingID: "booking-3", Rating: 4, Comment: "x"}, ErrForbidden},
		{"unknown booking", CreateFeedbackRequest{BookingID: "booking-9", Rating: 4, Comment: "x"}, parking.ErrBookingNotFound},
		{"unknown location", CreateFeedbackRequest{LocationID: "loc-9", Rating: 4, Comment: "x"}, parking.ErrLocationNotFound},
		{"rating too high", CreateFeedbackRequest{Rating: 6, Comment: "x"}, parking.ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, rahul, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListForLocationHidesModerated(t *testing.T) {
	ctx := context.Background()
	store := parking.NewSeeded()
	svc := NewService(store)

	visible, err := svc.ListForLocation(ctx, "loc-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 1 || visible[0].ID != "feedback-1" {
		t.Fatalf("visible = %+v", visible)
	}

	if _, err := svc.SetStatus(ctx, "feedback-1", parking.FeedbackStatusHidden); err != nil {
		t.Fatal(err)
	}
	visible, _ = svc.ListForLocation(ctx, "loc-1")
	if len(visible) != 0 {
		t.Errorf("hidden feedback still listed: %+v", visible)
	}

	if _, err := svc.ListForLocation(ctx, "loc-9"); !errors.Is(err, parking.ErrLocationNotFound) {
		t.Errorf("unknown location error = %v", err)
	}
}

func TestListAllFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewService(parking.NewSeeded())

	tests := []struct {
		name   string
		filter AdminFilter
		want   int
	}{
		{"all", AdminFilter{}, 2},
		{"rating", AdminFilter{Rating: 3}, 1},
		{"comment", AdminFilter{Search: "ENTRANCE"}, 1},
		{"location", AdminFilter{Search: "connaught"}, 1},
		{"user", AdminFilter{Search: "priya", Status: "visible"}, 1},
		{"flagged", AdminFilter{Status: "flagged"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListAll(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("ListAll() = %d entries, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := svc.ListAll(ctx, AdminFilter{Status: "deleted"}); !errors.Is(err, ErrInvalidStatusFilter) {
		t.Errorf("bad status error = %v", err)
	}
}

func TestRespondKeepsRating(t *testing.T) {
	ctx := context.Background()
	svc := NewService(parking.NewSeeded())

	entry, err := svc.Respond(ctx, "feedback-1", " Thanks! ")
	if err != nil {
		t.Fatal(err)
	}
	if entry.AdminResponse != "Thanks!" || entry.Rating != 4 {
		t.Errorf("entry = %+v", entry)
	}
	if _, err := svc.Respond(ctx, "feedback-9", "hi"); !errors.Is(err, parking.ErrFeedbackNotFound) {
		t.Errorf("unknown feedback error = %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := parking.NewSeeded()
	svc := NewService(store)

	if _, err := svc.SetStatus(ctx, "feedback-2", parking.FeedbackStatusFlagged); err != nil {
		t.Fatal(err)
	}
	stats := svc.Stats(ctx)

	if stats.Total != 2 || stats.AverageRating != 3.5 {
		t.Errorf("total/average = %d/%v", stats.Total, stats.AverageRating)
	}
	if stats.Distribution[4] != 1 || stats.Distribution[3] != 1 || stats.Distribution[1] != 0 {
		t.Errorf("Distribution = %v", stats.Distribution)
	}
	if stats.Responded != 1 || stats.Flagged != 1 || stats.Hidden != 0 {
		t.Errorf("moderation counts = %+v", stats)
	}
}
