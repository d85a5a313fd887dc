package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/constants"
	"letsparkit/pkg/logger"
)

// SlotReader is the part of the domain store the slot service reads
type SlotReader interface {
	Location(id string) (parking.Location, error)
	SlotsByLocation(locationID string) []parking.Slot
	Slot(id string) (parking.Slot, error)
}

type Service interface {
	ListSlots(ctx context.Context, locationID, userID string, filter SlotFilter) ([]SlotResponse, error)
	HoldSlot(ctx context.Context, slotID, userID string) (*Hold, error)
	ReleaseHold(ctx context.Context, holdID, userID string) error
	// CheckBookable fails with ErrSlotHeld when another user holds the slot
	CheckBookable(ctx context.Context, slotID, userID string) error
	ConsumeHold(ctx context.Context, slotID, userID string)
}

type service struct {
	store  SlotReader
	holds  HoldManager
	ttl    time.Duration
	logger *logger.Logger
}

func NewService(store SlotReader, holds HoldManager, ttl time.Duration) Service {
	if holds == nil {
		holds = NewMemoryHoldManager()
	}
	if ttl <= 0 {
		ttl = constants.TTL_SLOT_HOLD
	}
	return &service{
		store:  store,
		holds:  holds,
		ttl:    ttl,
		logger: logger.GetDefault().WithComponent("slots"),
	}
}

func (s *service) ListSlots(ctx context.Context, locationID, userID string, filter SlotFilter) ([]SlotResponse, error) {
	if _, err := s.store.Location(locationID); err != nil {
		return nil, err
	}

	all := s.store.SlotsByLocation(locationID)
	ids := make([]string, len(all))
	for i, slot := range all {
		ids[i] = slot.ID
	}
	holders, err := s.holds.Holders(ctx, ids)
	if err != nil {
		// listing still works without hold state
		s.logger.ErrorWithContext(ctx, "failed to read slot holds", err, map[string]interface{}{"location_id": locationID})
		holders = map[string]string{}
	}

	out := make([]SlotResponse, 0, len(all))
	for _, slot := range all {
		if !filter.matches(slot) {
			continue
		}
		holder, held := holders[slot.ID]
		out = append(out, SlotResponse{
			Slot:     slot,
			IsHeld:   held,
			HeldByMe: held && userID != "" && holder == userID,
		})
	}
	return out, nil
}

func (s *service) HoldSlot(ctx context.Context, slotID, userID string) (*Hold, error) {
	slot, err := s.store.Slot(slotID)
	if err != nil {
		return nil, err
	}
	if !slot.IsAvailable {
		return nil, fmt.Errorf("%w: %s", parking.ErrSlotUnavailable, slot.Number)
	}

	hold, err := s.holds.Hold(ctx, slot.ID, slot.LocationID, userID, s.ttl)
	if err != nil {
		return nil, err
	}
	s.logger.InfoWithContext(ctx, "Slot held", map[string]interface{}{
		"slot_id": slot.ID,
		"hold_id": hold.ID,
		"user_id": userID,
	})
	return hold, nil
}

func (s *service) ReleaseHold(ctx context.Context, holdID, userID string) error {
	return s.holds.Release(ctx, holdID, userID)
}

func (s *service) CheckBookable(ctx context.Context, slotID, userID string) error {
	holders, err := s.holds.Holders(ctx, []string{slotID})
	if err != nil {
		return err
	}
	if holder, held := holders[slotID]; held && holder != userID {
		return ErrSlotHeld
	}
	return nil
}

func (s *service) ConsumeHold(ctx context.Context, slotID, userID string) {
	if err := s.holds.Consume(ctx, slotID, userID); err != nil && !errors.Is(err, ErrHoldNotFound) {
		s.logger.ErrorWithContext(ctx, "failed to consume slot hold", err, map[string]interface{}{"slot_id": slotID})
	}
}
