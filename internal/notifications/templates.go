package notifications

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"letsparkit/internal/parking"
)

type noticeTemplate struct {
	subject *template.Template
	body    *template.Template
}

var funcs = template.FuncMap{
	"ist": func(t time.Time) string { return t.In(parking.IST).Format("02 Jan 2006 15:04") },
	"inr": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
}

func mustNotice(subject, body string) noticeTemplate {
	return noticeTemplate{
		subject: template.Must(template.New("subject").Funcs(funcs).Parse(subject)),
		body:    template.Must(template.New("body").Funcs(funcs).Parse(strings.TrimSpace(body))),
	}
}

var noticeTemplates = map[NotificationType]noticeTemplate{
	NotificationTypeBookingCreated: mustNotice(
		"Slot {{.Booking.SlotNumber}} reserved at {{.Booking.LocationName}}",
		`Hi {{.Booking.UserName}},
Your slot {{.Booking.SlotNumber}} at {{.Booking.LocationName}} is reserved from {{ist .Booking.StartTime}} for {{.Booking.Duration}} hour(s).
Complete the payment of {{inr .Booking.Amount}} to confirm it.`),
	NotificationTypeBookingConfirmed: mustNotice(
		"Booking {{.Booking.ID}} confirmed",
		`Hi {{.Booking.UserName}},
Your parking at {{.Booking.LocationName}} (slot {{.Booking.SlotNumber}}) is confirmed for vehicle {{.Booking.VehicleNumber}}.
Show the QR ticket at the entrance.`),
	NotificationTypeBookingCancelled: mustNotice(
		"Booking {{.Booking.ID}} cancelled",
		`Hi {{.Booking.UserName}},
Your booking for slot {{.Booking.SlotNumber}} at {{.Booking.LocationName}} has been cancelled.`),
	NotificationTypeBookingCompleted: mustNotice(
		"Thanks for parking at {{.Booking.LocationName}}",
		`Hi {{.Booking.UserName}},
Your booking {{.Booking.ID}} is complete. Tell us how it went by leaving feedback.`),
	NotificationTypePaymentReceipt: mustNotice(
		"Payment receipt {{.Payment.TransactionID}}",
		`We received {{inr .Payment.Amount}} via {{.Payment.PaymentMethod}} for booking {{.Payment.BookingID}}.
Transaction: {{.Payment.TransactionID}}`),
	NotificationTypeFeedbackReply: mustNotice(
		"We replied to your feedback",
		`Hi {{.Feedback.UserName}},
Thanks for rating {{if .Feedback.LocationName}}{{.Feedback.LocationName}}{{else}}LetsParkIt{{end}} {{.Feedback.Rating}}/5.
Our reply: {{.Feedback.AdminResponse}}`),
}

// Render builds the notice of the given type from an event
func Render(noticeType NotificationType, event parking.Event) (Notice, error) {
	tmpl, ok := noticeTemplates[noticeType]
	if !ok {
		return Notice{}, fmt.Errorf("no template for notice type %s", noticeType)
	}

	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, event); err != nil {
		return Notice{}, fmt.Errorf("render %s subject: %w", noticeType, err)
	}
	if err := tmpl.body.Execute(&body, event); err != nil {
		return Notice{}, fmt.Errorf("render %s body: %w", noticeType, err)
	}

	return Notice{
		Type:      noticeType,
		UserID:    event.UserID(),
		Subject:   subject.String(),
		Body:      body.String(),
		Status:    NotificationStatusPending,
		CreatedAt: event.OccurredAt,
	}, nil
}
