package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/pkg/logger"

	"github.com/google/uuid"
)

// Deliverer hands a rendered notice to its channel
type Deliverer interface {
	Deliver(ctx context.Context, notice *Notice) error
}

// LogDeliverer writes notices to the structured log
type LogDeliverer struct {
	logger *logger.Logger
}

func NewLogDeliverer() *LogDeliverer {
	return &LogDeliverer{logger: logger.GetDefault().WithComponent("notifications")}
}

func (d *LogDeliverer) Deliver(ctx context.Context, notice *Notice) error {
	d.logger.InfoWithContext(ctx, "Notification delivered", map[string]interface{}{
		"notice_id": notice.ID,
		"type":      notice.Type,
		"user_id":   notice.UserID,
		"subject":   notice.Subject,
	})
	return nil
}

// Processor turns domain events into delivered notices
type Processor struct {
	deliverer  Deliverer
	maxRetries int
	backoff    time.Duration
	logger     *logger.Logger
}

func NewProcessor(deliverer Deliverer, maxRetries int, backoff time.Duration) *Processor {
	if deliverer == nil {
		deliverer = NewLogDeliverer()
	}
	return &Processor{
		deliverer:  deliverer,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger.GetDefault().WithComponent("notifications"),
	}
}

// Process decodes a message value from the events topic and handles it
func (p *Processor) Process(ctx context.Context, value []byte) error {
	var msg EventMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return p.HandleEvent(ctx, msg.Event)
}

// HandleEvent renders every notice for the event and delivers each one
func (p *Processor) HandleEvent(ctx context.Context, event parking.Event) error {
	var errs []error
	for _, noticeType := range noticeTypesFor(event) {
		notice, err := Render(noticeType, event)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		notice.ID = uuid.NewString()

		if err := p.executeWithRetry(ctx, &notice); err != nil {
			notice.MarkFailed(err)
			errs = append(errs, err)
			continue
		}
		notice.MarkSent()
	}
	return errors.Join(errs...)
}

func (p *Processor) executeWithRetry(ctx context.Context, notice *Notice) error {
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		err := p.deliverer.Deliver(ctx, notice)
		if err == nil {
			return nil
		}
		notice.RetryCount = attempt

		if attempt == p.maxRetries {
			p.logger.ErrorWithContext(ctx, "Notification delivery failed", err, map[string]interface{}{
				"notice_id": notice.ID,
				"attempts":  attempt + 1,
			})
			return err
		}

		// Exponential backoff
		delay := p.backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Outbox keeps delivered notices in memory, newest last
type Outbox struct {
	mu      sync.Mutex
	notices []Notice
}

func (o *Outbox) Deliver(_ context.Context, notice *Notice) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notices = append(o.notices, *notice)
	return nil
}

func (o *Outbox) Notices() []Notice {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Notice(nil), o.notices...)
}
