package parking

import (
	"context"
	"time"
)

type EventType string

const (
	EventBookingCreated        EventType = "booking.created"
	EventBookingCancelled      EventType = "booking.cancelled"
	EventBookingCompleted      EventType = "booking.completed"
	EventPaymentRecorded       EventType = "payment.recorded"
	EventFeedbackCreated       EventType = "feedback.created"
	EventFeedbackResponded     EventType = "feedback.responded"
	EventFeedbackStatusChanged EventType = "feedback.status_changed"
	EventLocationUpdated       EventType = "location.updated"
)

// Event describes a committed change to the domain store. Only the entities
// touched by the change are set.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Booking    *Booking  `json:"booking,omitempty"`
	Payment    *Payment  `json:"payment,omitempty"`
	Feedback   *Feedback `json:"feedback,omitempty"`
	Slot       *Slot     `json:"slot,omitempty"`
	Location   *Location `json:"location,omitempty"`
}

// UserID returns the user the event concerns, if any
func (e Event) UserID() string {
	switch {
	case e.Booking != nil:
		return e.Booking.UserID
	case e.Payment != nil:
		return e.Payment.UserID
	case e.Feedback != nil:
		return e.Feedback.UserID
	}
	return ""
}

// LocationID returns the location the event concerns, if any
func (e Event) LocationID() string {
	switch {
	case e.Slot != nil:
		return e.Slot.LocationID
	case e.Booking != nil:
		return e.Booking.LocationID
	case e.Location != nil:
		return e.Location.ID
	case e.Feedback != nil:
		return e.Feedback.LocationID
	}
	return ""
}

// EventSink receives committed domain events. Implementations must not block
// for long; they run on the writer's goroutine after the store lock is released.
type EventSink interface {
	Publish(ctx context.Context, event Event)
}

// EventSinkFunc adapts a function to EventSink
type EventSinkFunc func(ctx context.Context, event Event)

func (f EventSinkFunc) Publish(ctx context.Context, event Event) {
	f(ctx, event)
}

// Sinks fans an event out to every sink in order
type Sinks []EventSink

func (s Sinks) Publish(ctx context.Context, event Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Publish(ctx, event)
		}
	}
}
