package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/constants"
	"letsparkit/pkg/cache"
	"letsparkit/pkg/logger"
)

const (
	recentBookingsLimit = 5
	recentFeedbackLimit = 3
)

// Service defines the analytics service interface
type Service interface {
	GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error)
	// InvalidateCache drops cached aggregates; called for every domain event
	InvalidateCache(ctx context.Context)
}

type service struct {
	repo   Repository
	cache  cache.Service
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

// NewService creates a new analytics service; a nil cache disables caching
func NewService(repo Repository, cacheService cache.Service, ttl time.Duration) Service {
	if cacheService == nil {
		cacheService = cache.NewNoop()
	}
	if ttl <= 0 {
		ttl = constants.TTL_DASHBOARD
	}
	return &service{
		repo:   repo,
		cache:  cacheService,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.GetDefault().WithComponent("analytics"),
	}
}

func (s *service) GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	dashboard, err := cache.GetOrSet(ctx, s.cache, constants.CACHE_KEY_ANALYTICS_DASHBOARD, s.ttl,
		func(context.Context) (DashboardAnalytics, error) {
			return buildDashboard(s.repo, s.now()), nil
		})
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *service) InvalidateCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ANALYTICS); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to invalidate analytics cache", err, nil)
	}
}

// CacheInvalidator subscribes the dashboard cache to domain events
func CacheInvalidator(svc Service) parking.EventSink {
	return parking.EventSinkFunc(func(ctx context.Context, _ parking.Event) {
		svc.InvalidateCache(ctx)
	})
}

// buildDashboard aggregates the current store snapshots
func buildDashboard(repo Repository, now time.Time) DashboardAnalytics {
	bookings := repo.Bookings()
	payments := repo.Payments()
	feedback := repo.Feedback()

	d := DashboardAnalytics{
		TotalBookings: len(bookings),
		GeneratedAt:   now.Format(time.RFC3339),
	}

	today := now.In(parking.IST)
	for _, b := range bookings {
		if b.Status == parking.StatusConfirmed {
			d.ConfirmedBookings++
		}
		if sameDay(b.StartTime.In(parking.IST), today) {
			d.TodayBookings++
		}
	}
	if d.TotalBookings > 0 {
		d.TodayShare = math.Round(float64(d.TodayBookings)/float64(d.TotalBookings)*1000) / 10
	}

	for _, p := range payments {
		if p.Status == parking.PaymentStatusPaid {
			d.TotalRevenue += p.Amount
		}
	}

	recent := append([]parking.Booking(nil), bookings...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].BookingTime.After(recent[j].BookingTime) })
	d.RecentBookings = recent[:min(recentBookingsLimit, len(recent))]

	latest := append([]parking.Feedback(nil), feedback...)
	sort.SliceStable(latest, func(i, j int) bool { return latest[i].Timestamp.After(latest[j].Timestamp) })
	d.RecentFeedback = latest[:min(recentFeedbackLimit, len(latest))]

	for _, loc := range repo.Locations() {
		occ := LocationOccupancy{
			LocationID:     loc.ID,
			Name:           loc.Name,
			TotalSlots:     loc.TotalSlots,
			AvailableSlots: loc.AvailableSlots,
		}
		if loc.TotalSlots > 0 {
			occ.OccupancyPercent = int(math.Round(float64(loc.TotalSlots-loc.AvailableSlots) / float64(loc.TotalSlots) * 100))
		}
		d.Occupancy = append(d.Occupancy, occ)
	}
	return d
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
