package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/pkg/logger"
)

var (
	ErrForbidden           = errors.New("booking belongs to another user")
	ErrInvalidStatusFilter = errors.New("invalid booking status filter")
	ErrInvalidStartTime    = errors.New("start time is required")
)

type Service interface {
	CreateBooking(ctx context.Context, caller Caller, req CreateBookingRequest) (*parking.Booking, error)
	ListUserBookings(ctx context.Context, userID string) []parking.Booking
	GetBooking(ctx context.Context, caller Caller, id string) (*parking.Booking, error)
	CancelBooking(ctx context.Context, caller Caller, id string) (*parking.Booking, error)
	CompleteBooking(ctx context.Context, id string) (*parking.Booking, error)
	ListAllBookings(ctx context.Context, filter AdminFilter) ([]parking.Booking, error)
	// CompleteExpired completes confirmed bookings whose end time is before now
	CompleteExpired(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	repo           Repository
	slots          SlotGuard
	vehicles       VehicleLookup
	defaultVehicle string
	logger         *logger.Logger
}

func NewService(repo Repository, slots SlotGuard, vehicles VehicleLookup, defaultVehicle string) Service {
	return &service{
		repo:           repo,
		slots:          slots,
		vehicles:       vehicles,
		defaultVehicle: defaultVehicle,
		logger:         logger.GetDefault().WithComponent("bookings"),
	}
}

func (s *service) CreateBooking(ctx context.Context, caller Caller, req CreateBookingRequest) (*parking.Booking, error) {
	if req.StartTime.IsZero() {
		return nil, ErrInvalidStartTime
	}
	if req.Duration < 1 {
		return nil, parking.ErrInvalidDuration
	}

	location, err := s.repo.Location(req.LocationID)
	if err != nil {
		return nil, err
	}

	if s.slots != nil {
		if err := s.slots.CheckBookable(ctx, req.SlotID, caller.UserID); err != nil {
			return nil, err
		}
	}

	booking, err := s.repo.CreateBooking(ctx, parking.NewBooking{
		UserID:        caller.UserID,
		UserName:      caller.Name,
		VehicleNumber: s.vehicleNumber(ctx, caller.UserID, req.VehicleNumber),
		LocationID:    location.ID,
		SlotID:        req.SlotID,
		StartTime:     req.StartTime,
		Duration:      req.Duration,
		Amount:        location.PricePerHour * float64(req.Duration),
	})
	if err != nil {
		return nil, err
	}

	if s.slots != nil {
		s.slots.ConsumeHold(ctx, booking.SlotID, caller.UserID)
	}
	s.logger.LogBookingCreated(ctx, booking.ID, booking.SlotID, booking.UserID)
	return &booking, nil
}

// vehicleNumber prefers the request, then the user's registered vehicle
func (s *service) vehicleNumber(ctx context.Context, userID, requested string) string {
	if v := strings.ToUpper(strings.TrimSpace(requested)); v != "" {
		return v
	}
	if s.vehicles != nil {
		if v := s.vehicles.VehicleNumber(ctx, userID); v != "" {
			return v
		}
	}
	return s.defaultVehicle
}

func (s *service) ListUserBookings(ctx context.Context, userID string) []parking.Booking {
	return s.repo.BookingsByUser(userID)
}

func (s *service) GetBooking(ctx context.Context, caller Caller, id string) (*parking.Booking, error) {
	booking, err := s.repo.Booking(id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && booking.UserID != caller.UserID {
		return nil, ErrForbidden
	}
	return &booking, nil
}

func (s *service) CancelBooking(ctx context.Context, caller Caller, id string) (*parking.Booking, error) {
	if _, err := s.GetBooking(ctx, caller, id); err != nil {
		return nil, err
	}

	booking, err := s.repo.CancelBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.LogBookingCancelled(ctx, booking.ID, booking.SlotID, caller.UserID)
	return &booking, nil
}

func (s *service) CompleteBooking(ctx context.Context, id string) (*parking.Booking, error) {
	booking, err := s.repo.CompleteBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.LogBookingCompleted(ctx, booking.ID, booking.SlotID)
	return &booking, nil
}

func (s *service) ListAllBookings(ctx context.Context, filter AdminFilter) ([]parking.Booking, error) {
	status, err := parseStatusFilter(filter.Status)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]parking.Booking, 0)
	for _, b := range s.repo.Bookings() {
		if status != "" && b.Status != status {
			continue
		}
		if term != "" && !matchesSearch(b, term) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// matchesSearch checks user name, vehicle number, location name and id
func matchesSearch(b parking.Booking, term string) bool {
	for _, field := range []string{b.UserName, b.VehicleNumber, b.LocationName, b.ID} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (s *service) CompleteExpired(ctx context.Context, now time.Time) (int, error) {
	completed := 0
	var errs []error
	for _, b := range s.repo.Bookings() {
		if b.Status != parking.StatusConfirmed || b.EndTime.After(now) {
			continue
		}
		if _, err := s.CompleteBooking(ctx, b.ID); err != nil {
			// a concurrent cancel may have won; skip it
			if errors.Is(err, parking.ErrInvalidTransition) {
				continue
			}
			errs = append(errs, fmt.Errorf("complete %s: %w", b.ID, err))
			continue
		}
		completed++
	}
	return completed, errors.Join(errs...)
}
