package notifications

import (
	"time"

	"letsparkit/internal/parking"
)

type NotificationType string

const (
	NotificationTypeBookingCreated   NotificationType = "BOOKING_CREATED"
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationTypeBookingCompleted NotificationType = "BOOKING_COMPLETED"
	NotificationTypePaymentReceipt   NotificationType = "PAYMENT_RECEIPT"
	NotificationTypeFeedbackReply    NotificationType = "FEEDBACK_REPLY"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// EventMessage is the JSON value written to the events topic
type EventMessage struct {
	ID    string        `json:"id"`
	Event parking.Event `json:"event"`
}

// Notice is a rendered user-facing notification
type Notice struct {
	ID         string             `json:"id"`
	Type       NotificationType   `json:"type"`
	UserID     string             `json:"userId"`
	Subject    string             `json:"subject"`
	Body       string             `json:"body"`
	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retryCount"`
	LastError  string             `json:"lastError,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	SentAt     *time.Time         `json:"sentAt,omitempty"`
}

func (n *Notice) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
}

func (n *Notice) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.LastError = err.Error()
}

// noticeTypesFor maps a domain event to the notices its user should receive
func noticeTypesFor(event parking.Event) []NotificationType {
	switch event.Type {
	case parking.EventBookingCreated:
		return []NotificationType{NotificationTypeBookingCreated}
	case parking.EventBookingCancelled:
		return []NotificationType{NotificationTypeBookingCancelled}
	case parking.EventBookingCompleted:
		return []NotificationType{NotificationTypeBookingCompleted}
	case parking.EventPaymentRecorded:
		if event.Payment == nil || event.Payment.Status != parking.PaymentStatusPaid {
			return nil
		}
		if event.Booking != nil {
			return []NotificationType{NotificationTypePaymentReceipt, NotificationTypeBookingConfirmed}
		}
		return []NotificationType{NotificationTypePaymentReceipt}
	case parking.EventFeedbackResponded:
		if event.Feedback != nil && event.Feedback.AdminResponse != "" {
			return []NotificationType{NotificationTypeFeedbackReply}
		}
	}
	return nil
}
