package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type dashboard struct {
	Total   int      `json:"total"`
	Recents []string `json:"recents"`
}

func newRedisCache(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(client), mr
}

func TestRedisGetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	var got dashboard
	if err := c.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get() on empty cache error = %v, want ErrCacheMiss", err)
	}

	want := dashboard{Total: 3, Recents: []string{"a", "b"}}
	if err := c.Set(ctx, "k", want, time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatal(err)
	}
	if got.Total != 3 || len(got.Recents) != 2 {
		t.Errorf("Get() = %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	if err := c.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired key error = %v, want ErrCacheMiss", err)
	}
}

func TestDeletePattern(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	for _, k := range []string{"app:dash:1", "app:dash:2", "app:other"} {
		if err := c.Set(ctx, k, 1, time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.DeletePattern(ctx, "app:dash:*"); err != nil {
		t.Fatal(err)
	}
	if mr.Exists("app:dash:1") || mr.Exists("app:dash:2") {
		t.Error("pattern keys should be deleted")
	}
	if !mr.Exists("app:other") {
		t.Error("unrelated key should survive")
	}
}

func TestGetOrSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t)

	calls := 0
	fetch := func(context.Context) (dashboard, error) {
		calls++
		return dashboard{Total: calls}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrSet(ctx, c, "dash", time.Minute, fetch)
		if err != nil {
			t.Fatal(err)
		}
		if got.Total != 1 {
			t.Errorf("call %d Total = %d, want cached 1", i, got.Total)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := GetOrSet(ctx, c, "other", time.Minute, func(context.Context) (dashboard, error) {
		return dashboard{}, boom
	}); !errors.Is(err, boom) {
		t.Errorf("fetch error = %v", err)
	}
}

func TestNoopAlwaysFetches(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()

	calls := 0
	for i := 0; i < 2; i++ {
		_, err := GetOrSet(ctx, c, "dash", time.Minute, func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
}
