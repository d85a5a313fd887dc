package users

import (
	"context"
	"strings"
)

// BookingCounter counts bookings per user
type BookingCounter interface {
	BookingCountByUser(userID string) int
}

type Service interface {
	ListUsers(ctx context.Context, search string) (*UserListResponse, error)
	GetUser(ctx context.Context, id string) (*UserResponse, error)
}

type service struct {
	repo     Repository
	bookings BookingCounter
}

func NewService(repo Repository, bookings BookingCounter) Service {
	return &service{repo: repo, bookings: bookings}
}

func (s *service) ListUsers(ctx context.Context, search string) (*UserListResponse, error) {
	all, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := &UserListResponse{Users: make([]UserResponse, 0, len(all))}
	for i := range all {
		u := &all[i]
		resp.Counts.Total++
		if u.IsAdmin() {
			resp.Counts.Admins++
		} else {
			resp.Counts.Users++
		}
		if u.Vehicle != nil {
			resp.Counts.WithVehicles++
		}
		if matchesSearch(u, search) {
			resp.Users = append(resp.Users, s.toResponse(u))
		}
	}
	return resp, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(u)
	return &resp, nil
}

func (s *service) toResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    string(u.Role),
		Phone:   u.Phone,
		Vehicle: u.Vehicle,
	}
	if s.bookings != nil {
		resp.BookingCount = s.bookings.BookingCountByUser(u.ID)
	}
	return resp
}

// matchesSearch checks name, email, phone and vehicle number case-insensitively
func matchesSearch(u *User, search string) bool {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	for _, field := range []string{u.Name, u.Email, u.Phone, u.VehicleNumber()} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
