package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// exerciseHoldManager runs the behaviour every HoldManager must share
func exerciseHoldManager(t *testing.T, m HoldManager) {
	t.Helper()
	ctx := context.Background()

	h, err := m.Hold(ctx, "slot-loc-1-1", "loc-1", "user-1", time.Minute)
	if err != nil {
		t.Fatalf("Hold() error = %v", err)
	}
	if h.ID == "" || h.UserID != "user-1" {
		t.Fatalf("hold = %+v", h)
	}

	if _, err := m.Hold(ctx, "slot-loc-1-1", "loc-1", "user-2", time.Minute); !errors.Is(err, ErrSlotHeld) {
		t.Errorf("second user err = %v, want ErrSlotHeld", err)
	}

	again, err := m.Hold(ctx, "slot-loc-1-1", "loc-1", "user-1", time.Minute)
	if err != nil || again.ID != h.ID {
		t.Errorf("re-hold by holder = %+v, %v", again, err)
	}

	holders, err := m.Holders(ctx, []string{"slot-loc-1-1", "slot-loc-1-2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(holders) != 1 || holders["slot-loc-1-1"] != "user-1" {
		t.Errorf("holders = %v", holders)
	}

	if err := m.Release(ctx, h.ID, "user-2"); !errors.Is(err, ErrNotHoldOwner) {
		t.Errorf("release by other err = %v", err)
	}
	if err := m.Release(ctx, h.ID, "user-1"); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := m.Release(ctx, h.ID, "user-1"); !errors.Is(err, ErrHoldNotFound) {
		t.Errorf("double release err = %v", err)
	}

	// consume only drops the caller's own hold
	if _, err := m.Hold(ctx, "slot-loc-1-3", "loc-1", "user-3", time.Minute); err != nil {
		t.Fatal(err)
	}
	_ = m.Consume(ctx, "slot-loc-1-3", "user-4")
	if holders, _ := m.Holders(ctx, []string{"slot-loc-1-3"}); holders["slot-loc-1-3"] != "user-3" {
		t.Error("consume by non-holder must keep the hold")
	}
	_ = m.Consume(ctx, "slot-loc-1-3", "user-3")
	if holders, _ := m.Holders(ctx, []string{"slot-loc-1-3"}); len(holders) != 0 {
		t.Errorf("hold should be consumed, holders = %v", holders)
	}
}

func TestMemoryHoldManager(t *testing.T) {
	exerciseHoldManager(t, NewMemoryHoldManager())
}

func TestMemoryHoldExpires(t *testing.T) {
	m := NewMemoryHoldManager().(*memoryHolds)
	now := time.Now()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := m.Hold(ctx, "s1", "loc-1", "user-1", time.Minute); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := m.Hold(ctx, "s1", "loc-1", "user-2", time.Minute); err != nil {
		t.Errorf("expired hold should not block, err = %v", err)
	}
}

func TestRedisHoldManager(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	holds := NewAtomicRedisHolds(client)
	if err := holds.PreloadScripts(context.Background()); err != nil {
		t.Fatalf("PreloadScripts() error = %v", err)
	}
	exerciseHoldManager(t, holds)
}

func TestRedisHoldExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	holds := NewAtomicRedisHolds(client)
	ctx := context.Background()

	if _, err := holds.Hold(ctx, "s1", "loc-1", "user-1", time.Minute); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("letsparkit:slots:hold:slot:s1") {
		t.Fatal("slot hold key missing")
	}
	mr.FastForward(61 * time.Second)
	if _, err := holds.Hold(ctx, "s1", "loc-1", "user-2", time.Minute); err != nil {
		t.Errorf("expired hold should not block, err = %v", err)
	}
}
