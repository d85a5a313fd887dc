package locations

import (
	"context"
	"strings"

	"letsparkit/internal/parking"
	"letsparkit/pkg/logger"
)

// Repository is the part of the domain store locations use
type Repository interface {
	Locations() []parking.Location
	Location(id string) (parking.Location, error)
	UpdateLocation(ctx context.Context, id string, update parking.LocationUpdate) (parking.Location, error)
}

// Filter narrows the public location listing
type Filter struct {
	Search string // name, area or address
	City   string // exact, case-insensitive
}

type Service interface {
	List(ctx context.Context, filter Filter) []parking.Location
	Get(ctx context.Context, id string) (*parking.Location, error)
	Update(ctx context.Context, id string, req UpdateLocationRequest) (*parking.Location, error)
}

type service struct {
	repo   Repository
	logger *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{repo: repo, logger: logger.GetDefault().WithComponent("locations")}
}

func (s *service) List(ctx context.Context, filter Filter) []parking.Location {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	city := strings.TrimSpace(filter.City)

	out := make([]parking.Location, 0)
	for _, loc := range s.repo.Locations() {
		if city != "" && !strings.EqualFold(loc.City, city) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(loc.Name), term) &&
			!strings.Contains(strings.ToLower(loc.Area), term) &&
			!strings.Contains(strings.ToLower(loc.Address), term) {
			continue
		}
		out = append(out, loc)
	}
	return out
}

func (s *service) Get(ctx context.Context, id string) (*parking.Location, error) {
	loc, err := s.repo.Location(id)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLocationRequest) (*parking.Location, error) {
	loc, err := s.repo.UpdateLocation(ctx, id, req.toUpdate())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Location updated", "location_id", id)
	return &loc, nil
}
