package feedback

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
	ErrInvalidStatusFilter = errors.New("invalid feedback status filter")
)

// Repository is the part of the domain store feedback uses
type Repository interface {
	Location(id string) (parking.Location, error)
	Booking(id string) (parking.Booking, error)
	Feedback() []parking.Feedback
	CreateFeedback(ctx context.Context, data parking.NewFeedback) (parking.Feedback, error)
	AttachAdminResponse(ctx context.Context, feedbackID, text string) (parking.Feedback, error)
	SetFeedbackStatus(ctx context.Context, feedbackID string, status parking.FeedbackStatus) (parking.Feedback, error)
}

type Service interface {
	Create(ctx context.Context, caller Caller, req CreateFeedbackRequest) (*parking.Feedback, error)
	ListMine(ctx context.Context, userID string) []parking.Feedback
	// ListForLocation returns the publicly visible feedback of a location
	ListForLocation(ctx context.Context, locationID string) ([]parking.Feedback, error)
	ListAll(ctx context.Context, filter AdminFilter) ([]parking.Feedback, error)
	Respond(ctx context.Context, id, text string) (*parking.Feedback, error)
	SetStatus(ctx context.Context, id string, status parking.FeedbackStatus) (*parking.Feedback, error)
	Stats(ctx context.Context) Stats
}

type service struct {
	repo   Repository
	logger *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: logger.GetDefault().WithComponent("feedback"),
	}
}

func (s *service) Create(ctx context.Context, caller Caller, req CreateFeedbackRequest) (*parking.Feedback, error) {
	if req.BookingID != "" {
		booking, err := s.repo.Booking(req.BookingID)
		if err != nil {
			return nil, err
		}
		if !caller.IsAdmin && booking.UserID != caller.UserID {
			return nil, ErrForbidden
		}
	}

	entry, err := s.repo.CreateFeedback(ctx, parking.NewFeedback{
		UserID:     caller.UserID,
		UserName:   caller.Name,
		BookingID:  req.BookingID,
		LocationID: req.LocationID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogFeedbackCreated(ctx, entry.ID, entry.UserID, entry.Rating)
	return &entry, nil
}

func (s *service) ListMine(ctx context.Context, userID string) []parking.Feedback {
	return s.filter(func(f parking.Feedback) bool { return f.UserID == userID })
}

func (s *service) ListForLocation(ctx context.Context, locationID string) ([]parking.Feedback, error) {
	if _, err := s.repo.Location(locationID); err != nil {
		return nil, err
	}
	return s.filter(func(f parking.Feedback) bool {
		return f.LocationID == locationID && f.Status == parking.FeedbackStatusVisible
	}), nil
}

func (s *service) ListAll(ctx context.Context, filter AdminFilter) ([]parking.Feedback, error) {
	var status parking.FeedbackStatus
	if raw := strings.ToLower(strings.TrimSpace(filter.Status)); raw != "" && raw != "all" {
		status = parking.FeedbackStatus(raw)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatusFilter, raw)
		}
	}
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	return s.filter(func(f parking.Feedback) bool {
		if status != "" && f.Status != status {
			return false
		}
		if filter.Rating != 0 && f.Rating != filter.Rating {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(f.UserName), term) ||
			strings.Contains(strings.ToLower(f.Comment), term) ||
			strings.Contains(strings.ToLower(f.LocationName), term)
	}), nil
}

func (s *service) filter(keep func(parking.Feedback) bool) []parking.Feedback {
	out := make([]parking.Feedback, 0)
	for _, f := range s.repo.Feedback() {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s *service) Respond(ctx context.Context, id, text string) (*parking.Feedback, error) {
	entry, err := s.repo.AttachAdminResponse(ctx, id, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *service) SetStatus(ctx context.Context, id string, status parking.FeedbackStatus) (*parking.Feedback, error) {
	entry, err := s.repo.SetFeedbackStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Feedback status changed", "feedback_id", id, "status", status)
	return &entry, nil
}

func (s *service) Stats(ctx context.Context) Stats {
	stats := Stats{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	sum := 0
	for _, f := range s.repo.Feedback() {
		stats.Total++
		stats.Distribution[f.Rating]++
		sum += f.Rating
		if f.AdminResponse != "" {
			stats.Responded++
		}
		switch f.Status {
		case parking.FeedbackStatusHidden:
			stats.Hidden++
		case parking.FeedbackStatusFlagged:
			stats.Flagged++
		}
	}
	if stats.Total > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.Total)*10) / 10
	}
	return stats
}
