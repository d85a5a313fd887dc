package parking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLocationNotFound  = errors.New("location not found")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotUnavailable   = errors.New("slot is not available")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrInvalidDuration   = errors.New("duration must be at least one hour")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidMethod     = errors.New("invalid payment method")
)

// Store holds the domain collections. A single writer at a time builds a new
// slice for the collection it changes and swaps it in; published slices are
// never modified, so readers only need the read lock to take a snapshot.
type Store struct {
	mu        sync.RWMutex
	locations []Location
	slots     []Slot
	bookings  []Booking
	payments  []Payment
	feedback  []Feedback

	sinkMu sync.RWMutex
	sinks  Sinks

	now   func() time.Time
	newID func(prefix string) string
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides entity id generation
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithEventSink registers a sink at construction time
func WithEventSink(sink EventSink) Option {
	return func(s *Store) { s.sinks = append(s.sinks, sink) }
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: defaultID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeeded creates a store loaded with the sample data set
func NewSeeded(opts ...Option) *Store {
	s := New(opts...)
	seed := SeedData()
	s.locations = seed.Locations
	s.slots = seed.Slots
	s.bookings = seed.Bookings
	s.payments = seed.Payments
	s.feedback = seed.Feedback
	return s
}

func defaultID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Subscribe adds an event sink
func (s *Store) Subscribe(sink EventSink) {
	s.sinkMu.Lock()
	defer s.sinkMu.Unlock()
	s.sinks = append(s.sinks, sink)
}

func (s *Store) publish(ctx context.Context, event Event) {
	s.sinkMu.RLock()
	sinks := s.sinks
	s.sinkMu.RUnlock()
	sinks.Publish(ctx, event)
}

// ================== READS ==================

// Locations returns all locations with availableSlots derived from slot state
func (s *Store) Locations() []Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := s.availableCounts()
	out := make([]Location, len(s.locations))
	for i, loc := range s.locations {
		loc.AvailableSlots = counts[loc.ID]
		out[i] = loc
	}
	return out
}

// Location finds a location by id
func (s *Store) Location(id string) (Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.locationIndex(id)
	if i < 0 {
		return Location{}, ErrLocationNotFound
	}
	loc := s.locations[i]
	loc.AvailableSlots = s.availableCounts()[id]
	return loc, nil
}

// SlotsByLocation returns the slots of a location in generation order
func (s *Store) SlotsByLocation(locationID string) []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Slot, 0)
	for _, slot := range s.slots {
		if slot.LocationID == locationID {
			out = append(out, slot)
		}
	}
	return out
}

// Slot finds a slot by id
func (s *Store) Slot(id string) (Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.slotIndex(id)
	if i < 0 {
		return Slot{}, ErrSlotNotFound
	}
	return s.slots[i], nil
}

// Bookings returns every booking in insertion order
func (s *Store) Bookings() []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookings)
}

// BookingsByUser returns the bookings of a user in insertion order
func (s *Store) BookingsByUser(userID string) []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// Booking finds a booking by id
func (s *Store) Booking(id string) (Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.bookingIndex(id)
	if i < 0 {
		return Booking{}, ErrBookingNotFound
	}
	return s.bookings[i], nil
}

// BookingCountByUser counts the bookings of a user
func (s *Store) BookingCountByUser(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, b := range s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n
}

// Payments returns every payment in insertion order
func (s *Store) Payments() []Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.payments)
}

// PaymentsByUser returns the payments of a user in insertion order
func (s *Store) PaymentsByUser(userID string) []Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Payment, 0)
	for _, p := range s.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// Payment finds a payment by id
func (s *Store) Payment(id string) (Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return Payment{}, ErrPaymentNotFound
}

// Feedback returns every feedback entry in insertion order
func (s *Store) Feedback() []Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.feedback)
}

// FeedbackByID finds a feedback entry by id
func (s *Store) FeedbackByID(id string) (Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.feedbackIndex(id)
	if i < 0 {
		return Feedback{}, ErrFeedbackNotFound
	}
	return s.feedback[i], nil
}

// ================== WRITES ==================

// CreateBooking books a slot. The availability check and the slot update
// happen under the writer lock, so two callers racing for the same slot
// cannot both succeed.
func (s *Store) CreateBooking(ctx context.Context, data NewBooking) (Booking, error) {
	if data.Duration < 1 {
		return Booking{}, ErrInvalidDuration
	}

	s.mu.Lock()

	li := s.locationIndex(data.LocationID)
	if li < 0 {
		s.mu.Unlock()
		return Booking{}, ErrLocationNotFound
	}
	si := s.slotIndex(data.SlotID)
	if si < 0 || s.slots[si].LocationID != data.LocationID {
		s.mu.Unlock()
		return Booking{}, ErrSlotNotFound
	}
	if !s.slots[si].IsAvailable {
		s.mu.Unlock()
		return Booking{}, fmt.Errorf("%w: %s", ErrSlotUnavailable, s.slots[si].Number)
	}

	now := s.now()
	booking := Booking{
		ID:            s.newID("booking"),
		UserID:        data.UserID,
		UserName:      data.UserName,
		VehicleNumber: data.VehicleNumber,
		LocationID:    data.LocationID,
		LocationName:  s.locations[li].Name,
		SlotID:        data.SlotID,
		SlotNumber:    s.slots[si].Number,
		BookingTime:   now,
		StartTime:     data.StartTime,
		EndTime:       data.StartTime.Add(time.Duration(data.Duration) * time.Hour),
		Duration:      data.Duration,
		Amount:        data.Amount,
		Status:        StatusPending,
	}

	slot := s.setSlotState(si, false, true)
	s.bookings = appendCopy(s.bookings, booking)

	s.mu.Unlock()

	s.publish(ctx, Event{Type: EventBookingCreated, OccurredAt: now, Booking: &booking, Slot: &slot})
	return booking, nil
}

// CancelBooking cancels a pending or confirmed booking and frees its slot.
// Cancelling an already cancelled booking returns it unchanged.
func (s *Store) CancelBooking(ctx context.Context, id string) (Booking, error) {
	s.mu.Lock()

	bi := s.bookingIndex(id)
	if bi < 0 {
		s.mu.Unlock()
		return Booking{}, ErrBookingNotFound
	}
	current := s.bookings[bi]
	if current.Status == StatusCancelled {
		s.mu.Unlock()
		return current, nil
	}
	if !current.Status.CanTransitionTo(StatusCancelled) {
		s.mu.Unlock()
		return Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, StatusCancelled)
	}

	booking, slot := s.releaseBooking(bi, StatusCancelled)
	s.mu.Unlock()

	s.publish(ctx, Event{Type: EventBookingCancelled, OccurredAt: s.now(), Booking: &booking, Slot: slot})
	return booking, nil
}

// CompleteBooking marks a confirmed booking completed and frees its slot
func (s *Store) CompleteBooking(ctx context.Context, id string) (Booking, error) {
	s.mu.Lock()

	bi := s.bookingIndex(id)
	if bi < 0 {
		s.mu.Unlock()
		return Booking{}, ErrBookingNotFound
	}
	current := s.bookings[bi]
	if !current.Status.CanTransitionTo(StatusCompleted) {
		s.mu.Unlock()
		return Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, StatusCompleted)
	}

	booking, slot := s.releaseBooking(bi, StatusCompleted)
	s.mu.Unlock()

	s.publish(ctx, Event{Type: EventBookingCompleted, OccurredAt: s.now(), Booking: &booking, Slot: slot})
	return booking, nil
}

// releaseBooking sets the terminal status and frees the slot. Caller holds mu.
func (s *Store) releaseBooking(bi int, status BookingStatus) (Booking, *Slot) {
	booking := s.bookings[bi]
	booking.Status = status
	s.bookings = replaceCopy(s.bookings, bi, booking)

	var slot *Slot
	if si := s.slotIndex(booking.SlotID); si >= 0 {
		freed := s.setSlotState(si, true, false)
		slot = &freed
	}
	return booking, slot
}

// RecordPayment appends a payment. A paid payment that references a booking
// confirms it; the transition is checked before anything is written.
func (s *Store) RecordPayment(ctx context.Context, data NewPayment) (Payment, error) {
	if data.Status == "" {
		data.Status = PaymentStatusPaid
	}
	if !data.Status.IsValid() {
		return Payment{}, fmt.Errorf("%w: %q", ErrInvalidStatus, data.Status)
	}
	if !data.PaymentMethod.IsValid() {
		return Payment{}, fmt.Errorf("%w: %q", ErrInvalidMethod, data.PaymentMethod)
	}

	s.mu.Lock()

	bi := -1
	if data.BookingID != "" {
		bi = s.bookingIndex(data.BookingID)
		if bi < 0 {
			s.mu.Unlock()
			return Payment{}, ErrBookingNotFound
		}
		current := s.bookings[bi].Status
		if data.Status == PaymentStatusPaid && !current.CanTransitionTo(StatusConfirmed) {
			s.mu.Unlock()
			return Payment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, StatusConfirmed)
		}
	}

	now := s.now()
	payment := Payment{
		ID:            s.newID("pay"),
		BookingID:     data.BookingID,
		UserID:        data.UserID,
		Amount:        data.Amount,
		Status:        data.Status,
		PaymentMethod: data.PaymentMethod,
		TransactionID: data.TransactionID,
		Timestamp:     now,
	}
	if payment.TransactionID == "" {
		payment.TransactionID = NewTransactionID(now)
	}
	s.payments = appendCopy(s.payments, payment)

	var confirmed *Booking
	if bi >= 0 && payment.Status == PaymentStatusPaid {
		booking := s.bookings[bi]
		booking.Status = StatusConfirmed
		booking.PaymentID = payment.ID
		booking.PaymentMethod = payment.PaymentMethod
		s.bookings = replaceCopy(s.bookings, bi, booking)
		confirmed = &booking
	}

	s.mu.Unlock()

	s.publish(ctx, Event{Type: EventPaymentRecorded, OccurredAt: now, Payment: &payment, Booking: confirmed})
	return payment, nil
}

// CreateFeedback appends a feedback entry. When it names a booking, the
// location fields are copied from that booking.
func (s *Store) CreateFeedback(ctx context.Context, data NewFeedback) (Feedback, error) {
	if data.Rating < 1 || data.Rating > 5 {
		return Feedback{}, ErrInvalidRating
	}
	if data.Status == "" {
		data.Status = FeedbackStatusVisible
	}
	if !data.Status.IsValid() {
		return Feedback{}, fmt.Errorf("%w: %q", ErrInvalidStatus, data.Status)
	}

	s.mu.Lock()

	entry := Feedback{
		ID:         s.newID("feedback"),
		UserID:     data.UserID,
		UserName:   data.UserName,
		BookingID:  data.BookingID,
		LocationID: data.LocationID,
		Rating:     data.Rating,
		Comment:    data.Comment,
		Timestamp:  s.now(),
		Status:     data.Status,
	}
	if data.BookingID != "" {
		bi := s.bookingIndex(data.BookingID)
		if bi < 0 {
			s.mu.Unlock()
			return Feedback{}, ErrBookingNotFound
		}
		entry.LocationID = s.bookings[bi].LocationID
		entry.LocationName = s.bookings[bi].LocationName
	} else if entry.LocationID != "" {
		li := s.locationIndex(entry.LocationID)
		if li < 0 {
			s.mu.Unlock()
			return Feedback{}, ErrLocationNotFound
		}
		entry.LocationName = s.locations[li].Name
	}
	s.feedback = appendCopy(s.feedback, entry)

	s.mu.Unlock()

	s.publish(ctx, Event{Type: EventFeedbackCreated, OccurredAt: entry.Timestamp, Feedback: &entry})
	return entry, nil
}

// AttachAdminResponse sets the administrator's reply on a feedback entry
func (s *Store) AttachAdminResponse(ctx context.Context, feedbackID, text string) (Feedback, error) {
	return s.updateFeedback(ctx, feedbackID, EventFeedbackResponded, func(f *Feedback) {
		f.AdminResponse = text
	})
}

// SetFeedbackStatus moderates a feedback entry
func (s *Store) SetFeedbackStatus(ctx context.Context, feedbackID string, status FeedbackStatus) (Feedback, error) {
	if !status.IsValid() {
		return Feedback{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.updateFeedback(ctx, feedbackID, EventFeedbackStatusChanged, func(f *Feedback) {
		f.Status = status
	})
}

func (s *Store) updateFeedback(ctx context.Context, id string, eventType EventType, apply func(*Feedback)) (Feedback, error) {
	s.mu.Lock()

	fi := s.feedbackIndex(id)
	if fi < 0 {
		s.mu.Unlock()
		return Feedback{}, ErrFeedbackNotFound
	}
	entry := s.feedback[fi]
	apply(&entry)
	s.feedback = replaceCopy(s.feedback, fi, entry)

	s.mu.Unlock()

	s.publish(ctx, Event{Type: eventType, OccurredAt: s.now(), Feedback: &entry})
	return entry, nil
}

// UpdateLocation applies an admin edit. Slot counts are derived and cannot be set.
func (s *Store) UpdateLocation(ctx context.Context, id string, update LocationUpdate) (Location, error) {
	s.mu.Lock()

	li := s.locationIndex(id)
	if li < 0 {
		s.mu.Unlock()
		return Location{}, ErrLocationNotFound
	}
	loc := s.locations[li]
	if update.Name != nil {
		loc.Name = strings.TrimSpace(*update.Name)
	}
	if update.Address != nil {
		loc.Address = *update.Address
	}
	if update.Area != nil {
		loc.Area = *update.Area
	}
	if update.City != nil {
		loc.City = *update.City
	}
	if update.PricePerHour != nil {
		loc.PricePerHour = max(*update.PricePerHour, 0)
	}
	if update.Image != nil {
		loc.Image = *update.Image
	}
	if update.Amenities != nil {
		loc.Amenities = cleanAmenities(update.Amenities)
	}
	if update.Coordinates != nil {
		loc.Coordinates = *update.Coordinates
	}
	s.locations = replaceCopy(s.locations, li, loc)
	loc.AvailableSlots = s.availableCounts()[id]

	s.mu.Unlock()

	s.publish(ctx, Event{Type: EventLocationUpdated, OccurredAt: s.now(), Location: &loc})
	return loc, nil
}

// ================== HELPERS ==================

// setSlotState swaps in a new slot slice with the slot at si updated. Caller holds mu.
func (s *Store) setSlotState(si int, available, reserved bool) Slot {
	slot := s.slots[si]
	slot.IsAvailable = available
	slot.IsReserved = reserved
	s.slots = replaceCopy(s.slots, si, slot)
	return slot
}

func (s *Store) availableCounts() map[string]int {
	counts := make(map[string]int, len(s.locations))
	for _, slot := range s.slots {
		if slot.IsAvailable {
			counts[slot.LocationID]++
		}
	}
	return counts
}

func (s *Store) locationIndex(id string) int {
	return slices.IndexFunc(s.locations, func(l Location) bool { return l.ID == id })
}

func (s *Store) slotIndex(id string) int {
	return slices.IndexFunc(s.slots, func(sl Slot) bool { return sl.ID == id })
}

func (s *Store) bookingIndex(id string) int {
	return slices.IndexFunc(s.bookings, func(b Booking) bool { return b.ID == id })
}

func (s *Store) feedbackIndex(id string) int {
	return slices.IndexFunc(s.feedback, func(f Feedback) bool { return f.ID == id })
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func replaceCopy[T any](items []T, i int, item T) []T {
	out := slices.Clone(items)
	out[i] = item
	return out
}

func cleanAmenities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// NewTransactionID builds a gateway-style transaction reference
func NewTransactionID(at time.Time) string {
	return fmt.Sprintf("txn-%d-%s", at.Unix(), strings.ToUpper(uuid.NewString()[:8]))
}
