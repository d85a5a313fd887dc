package slots

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotHeld     = errors.New("slot is held by another user")
	ErrHoldNotFound = errors.New("hold not found or expired")
	ErrNotHoldOwner = errors.New("hold belongs to another user")
)

// HoldManager keeps slot holds. Hold by the current holder extends the hold.
type HoldManager interface {
	Hold(ctx context.Context, slotID, locationID, userID string, ttl time.Duration) (*Hold, error)
	Release(ctx context.Context, holdID, userID string) error
	// Consume drops the hold on slotID if userID owns it
	Consume(ctx context.Context, slotID, userID string) error
	// Holders maps each held slot id to its holder's user id
	Holders(ctx context.Context, slotIDs []string) (map[string]string, error)
}

type memoryHolds struct {
	mu     sync.Mutex
	bySlot map[string]*Hold
	byID   map[string]*Hold
	now    func() time.Time
}

// NewMemoryHoldManager keeps holds in process memory
func NewMemoryHoldManager() HoldManager {
	return &memoryHolds{
		bySlot: make(map[string]*Hold),
		byID:   make(map[string]*Hold),
		now:    time.Now,
	}
}

// live returns the unexpired hold on slotID. Caller holds mu.
func (m *memoryHolds) live(slotID string) *Hold {
	h, ok := m.bySlot[slotID]
	if !ok {
		return nil
	}
	if !h.ExpiresAt.After(m.now()) {
		delete(m.bySlot, slotID)
		delete(m.byID, h.ID)
		return nil
	}
	return h
}

func (m *memoryHolds) Hold(ctx context.Context, slotID, locationID, userID string, ttl time.Duration) (*Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expires := m.now().Add(ttl)
	if h := m.live(slotID); h != nil {
		if h.UserID != userID {
			return nil, ErrSlotHeld
		}
		h.ExpiresAt = expires
		held := *h
		return &held, nil
	}

	h := &Hold{
		ID:         uuid.NewString(),
		SlotID:     slotID,
		LocationID: locationID,
		UserID:     userID,
		ExpiresAt:  expires,
	}
	m.bySlot[slotID] = h
	m.byID[h.ID] = h
	held := *h
	return &held, nil
}

func (m *memoryHolds) Release(ctx context.Context, holdID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.byID[holdID]
	if !ok {
		return ErrHoldNotFound
	}
	if current := m.live(h.SlotID); current == nil || current.ID != holdID {
		delete(m.byID, holdID)
		return ErrHoldNotFound
	}
	if userID != "" && h.UserID != userID {
		return ErrNotHoldOwner
	}
	delete(m.byID, holdID)
	delete(m.bySlot, h.SlotID)
	return nil
}

func (m *memoryHolds) Consume(ctx context.Context, slotID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h := m.live(slotID); h != nil && h.UserID == userID {
		delete(m.byID, h.ID)
		delete(m.bySlot, slotID)
	}
	return nil
}

func (m *memoryHolds) Holders(ctx context.Context, slotIDs []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string)
	for _, id := range slotIDs {
		if h := m.live(id); h != nil {
			out[id] = h.UserID
		}
	}
	return out, nil
}
