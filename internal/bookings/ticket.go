package bookings

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"letsparkit/internal/parking"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const ticketPrefix = "LPI"

var ErrInvalidTicket = errors.New("invalid ticket payload")

// Tickets signs QR payloads for bookings and renders printable tickets
type Tickets struct {
	secret []byte
	now    func() time.Time
}

func NewTickets(secret string) *Tickets {
	return &Tickets{secret: []byte(secret), now: time.Now}
}

// Payload returns LPI|bookingID|slotID|issuedAt|signature
func (t *Tickets) Payload(b parking.Booking) string {
	data := fmt.Sprintf("%s|%s|%s|%d", ticketPrefix, b.ID, b.SlotID, t.now().Unix())
	return data + "|" + t.sign(data)
}

func (t *Tickets) sign(data string) string {
	h := hmac.New(sha256.New, t.secret)
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Parse checks the signature and returns the booking and slot ids
func (t *Tickets) Parse(payload string) (bookingID, slotID string, err error) {
	parts := strings.Split(strings.TrimSpace(payload), "|")
	if len(parts) != 5 || parts[0] != ticketPrefix {
		return "", "", ErrInvalidTicket
	}
	if _, err := strconv.ParseInt(parts[3], 10, 64); err != nil {
		return "", "", ErrInvalidTicket
	}

	data := strings.Join(parts[:4], "|")
	if !hmac.Equal([]byte(parts[4]), []byte(t.sign(data))) {
		return "", "", fmt.Errorf("%w: signature mismatch", ErrInvalidTicket)
	}
	return parts[1], parts[2], nil
}

// QR encodes the signed payload as a PNG
func (t *Tickets) QR(b parking.Booking) ([]byte, error) {
	png, err := qrcode.Encode(t.Payload(b), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// PDF renders an A4 parking ticket with the QR code
func (t *Tickets) PDF(b parking.Booking) ([]byte, error) {
	qrPNG, err := t.QR(b)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "LetsParkIt Parking Ticket")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	lines := []string{
		"Booking ID: " + b.ID,
		"Name: " + b.UserName,
		"Vehicle: " + b.VehicleNumber,
		"Location: " + b.LocationName,
		"Slot: " + b.SlotNumber,
		"From: " + b.StartTime.In(parking.IST).Format("02 Jan 2006 15:04"),
		"To: " + b.EndTime.In(parking.IST).Format("02 Jan 2006 15:04"),
		fmt.Sprintf("Amount: INR %.2f", b.Amount),
		"Status: " + string(b.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 10, line)
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Verify resolves a scanned payload against the current booking state
func (t *Tickets) Verify(repo Repository, payload string) TicketVerificationResponse {
	bookingID, slotID, err := t.Parse(payload)
	if err != nil {
		return TicketVerificationResponse{Reason: err.Error()}
	}

	booking, err := repo.Booking(bookingID)
	if err != nil {
		return TicketVerificationResponse{Reason: "booking not found"}
	}
	if booking.SlotID != slotID {
		return TicketVerificationResponse{Reason: "slot mismatch", Booking: &booking}
	}
	if !booking.HoldsSlot() {
		return TicketVerificationResponse{Reason: "booking is " + string(booking.Status), Booking: &booking}
	}
	return TicketVerificationResponse{Valid: true, Booking: &booking}
}
