package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"letsparkit/internal/parking"
	"letsparkit/pkg/logger"
)

var (
	ErrForbidden           = errors.New("booking belongs to another user")
	ErrAlreadyPaid         = errors.New("booking is not awaiting payment")
	ErrInvalidStatusFilter = errors.New("invalid payment status filter")
)

// Repository is the part of the domain store the payment flow uses
type Repository interface {
	Booking(id string) (parking.Booking, error)
	Payments() []parking.Payment
	PaymentsByUser(userID string) []parking.Payment
	RecordPayment(ctx context.Context, data parking.NewPayment) (parking.Payment, error)
}

type Service interface {
	// Pay runs the simulated gateway for a pending booking
	Pay(ctx context.Context, caller Caller, req PayRequest) (*parking.Payment, error)
	ListUserPayments(ctx context.Context, userID string) []parking.Payment
	ListAllPayments(ctx context.Context, filter AdminFilter) ([]parking.Payment, error)
	Stats(ctx context.Context) Stats
}

type service struct {
	repo   Repository
	logger *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: logger.GetDefault().WithComponent("payments"),
	}
}

func (s *service) Pay(ctx context.Context, caller Caller, req PayRequest) (*parking.Payment, error) {
	booking, err := s.repo.Booking(req.BookingID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && booking.UserID != caller.UserID {
		return nil, ErrForbidden
	}
	if booking.Status != parking.StatusPending {
		return nil, fmt.Errorf("%w: booking is %s", ErrAlreadyPaid, booking.Status)
	}

	payment, err := s.repo.RecordPayment(ctx, parking.NewPayment{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		Amount:        booking.Amount,
		Status:        parking.PaymentStatusPaid,
		PaymentMethod: parking.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		// a concurrent cancel or payment won the race
		if errors.Is(err, parking.ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: %v", ErrAlreadyPaid, err)
		}
		return nil, err
	}

	s.logger.LogPaymentRecorded(ctx, payment.ID, payment.BookingID, payment.TransactionID, payment.Amount)
	return &payment, nil
}

func (s *service) ListUserPayments(ctx context.Context, userID string) []parking.Payment {
	return s.repo.PaymentsByUser(userID)
}

func (s *service) ListAllPayments(ctx context.Context, filter AdminFilter) ([]parking.Payment, error) {
	var status parking.PaymentStatus
	if raw := strings.ToLower(strings.TrimSpace(filter.Status)); raw != "" && raw != "all" {
		status = parking.PaymentStatus(raw)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatusFilter, raw)
		}
	}
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]parking.Payment, 0)
	for _, p := range s.repo.Payments() {
		if status != "" && p.Status != status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.ID), term) &&
			!strings.Contains(strings.ToLower(p.TransactionID), term) &&
			!strings.Contains(strings.ToLower(p.BookingID), term) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *service) Stats(ctx context.Context) Stats {
	return computeStats(s.repo.Payments())
}

func computeStats(payments []parking.Payment) Stats {
	stats := Stats{
		TotalPayments: len(payments),
		MethodCounts:  make(map[parking.PaymentMethod]int, len(parking.PaymentMethods)),
	}
	for _, m := range parking.PaymentMethods {
		stats.MethodCounts[m] = 0
	}

	for _, p := range payments {
		stats.MethodCounts[p.PaymentMethod]++
		if p.Status == parking.PaymentStatusPaid {
			stats.SuccessfulPayments++
			stats.TotalRevenue += p.Amount
		}
	}
	if stats.TotalPayments > 0 {
		rate := float64(stats.SuccessfulPayments) / float64(stats.TotalPayments) * 100
		stats.SuccessRate = math.Round(rate*10) / 10
	}
	if stats.SuccessfulPayments > 0 {
		stats.AverageAmount = math.Round(stats.TotalRevenue / float64(stats.SuccessfulPayments))
	}
	return stats
}
