package bookings

import (
	"context"
	"fmt"
	"time"

	"letsparkit/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CompletionScheduler completes confirmed bookings once their end time passes
type CompletionScheduler struct {
	cron     *cron.Cron
	service  Service
	schedule string
	logger   *logger.Logger
	now      func() time.Time
}

func NewCompletionScheduler(service Service, schedule string) *CompletionScheduler {
	return &CompletionScheduler{
		cron:     cron.New(cron.WithSeconds()),
		service:  service,
		schedule: schedule,
		logger:   logger.GetDefault().WithComponent("booking_jobs"),
		now:      time.Now,
	}
}

// Start registers the completion job and starts the scheduler
func (s *CompletionScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		return fmt.Errorf("invalid completion schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Booking completion scheduler started", "schedule", s.schedule)
	return nil
}

// Stop waits for a running job to finish
func (s *CompletionScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Booking completion scheduler stopped")
}

func (s *CompletionScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	completed, err := s.service.CompleteExpired(ctx, s.now())
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to complete expired bookings", err, map[string]interface{}{
			"completed": completed,
		})
		return
	}
	if completed > 0 {
		s.logger.InfoWithContext(ctx, "Completed expired bookings", map[string]interface{}{
			"completed": completed,
		})
	}
}
