package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"letsparkit/internal/shared/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func testConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:                 true,
		WindowDuration:          time.Minute,
		DefaultRequests:         5,
		PublicRequests:          5,
		AuthRequests:            2,
		BookingRequests:         5,
		BookingCriticalRequests: 3,
		AdminRequests:           5,
		HealthRequests:          5,
		WhitelistedIPs:          []string{"10.0.0.1"},
	}
}

func newRedisLimiter(t *testing.T, cfg config.RateLimitConfig) *RedisLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client, cfg)
}

func TestLimiters(t *testing.T) {
	limiters := map[string]func(t *testing.T, cfg config.RateLimitConfig) Limiter{
		"redis":  func(t *testing.T, cfg config.RateLimitConfig) Limiter { return newRedisLimiter(t, cfg) },
		"memory": func(_ *testing.T, cfg config.RateLimitConfig) Limiter { return NewMemoryLimiter(cfg) },
	}

	for name, build := range limiters {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			limiter := build(t, testConfig())

			for i := 0; i < 2; i++ {
				res, err := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeAuth)
				if err != nil {
					t.Fatal(err)
				}
				if !res.Allowed || res.Limit != 2 || res.Remaining != 1-i {
					t.Errorf("request %d = %+v", i, res)
				}
			}

			res, err := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeAuth)
			if err != nil {
				t.Fatal(err)
			}
			if res.Allowed || res.Remaining != 0 {
				t.Errorf("third auth request = %+v, want rejected", res)
			}

			// Separate budget per class and per client
			if res, _ := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypePublic); !res.Allowed {
				t.Error("public class should have its own budget")
			}
			if res, _ := limiter.IsAllowed(ctx, "5.6.7.8", RateLimitTypeAuth); !res.Allowed {
				t.Error("another client should have its own budget")
			}

			for i := 0; i < 5; i++ {
				if res, _ := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth); !res.Allowed {
					t.Fatal("whitelisted client must never be limited")
				}
			}
		})
	}
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	limiter := New(nil, cfg)
	for i := 0; i < 10; i++ {
		res, err := limiter.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypeAuth)
		if err != nil || !res.Allowed {
			t.Fatalf("request %d = %+v, %v", i, res, err)
		}
	}
}

func TestMemoryLimiterRefills(t *testing.T) {
	limiter := NewMemoryLimiter(testConfig())
	now := time.Date(2023, 5, 18, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeAuth)
	}
	if res, _ := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeAuth); res.Allowed {
		t.Fatal("bucket should be empty")
	}

	now = now.Add(31 * time.Second)
	if res, _ := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeAuth); !res.Allowed {
		t.Error("one token should refill after half a window")
	}
}

func TestRateLimitType(t *testing.T) {
	tests := []struct {
		method, path string
		want         RateLimitType
	}{
		{http.MethodGet, "/health", RateLimitTypeHealth},
		{http.MethodGet, "/metrics", RateLimitTypeHealth},
		{http.MethodGet, "/api/v1/admin/bookings", RateLimitTypeAdmin},
		{http.MethodPost, "/api/v1/auth/login", RateLimitTypeAuth},
		{http.MethodPost, "/api/v1/bookings", RateLimitTypeBookingCritical},
		{http.MethodPost, "/api/v1/bookings/:id/cancel", RateLimitTypeBookingCritical},
		{http.MethodPost, "/api/v1/slots/:id/hold", RateLimitTypeBookingCritical},
		{http.MethodPost, "/api/v1/payments", RateLimitTypeBookingCritical},
		{http.MethodGet, "/api/v1/bookings", RateLimitTypeBooking},
		{http.MethodGet, "/api/v1/payments", RateLimitTypeBooking},
		{http.MethodDelete, "/api/v1/holds/:holdId", RateLimitTypeBooking},
		{http.MethodGet, "/api/v1/locations/:id/feedback", RateLimitTypePublic},
		{http.MethodGet, "/api/v1/locations", RateLimitTypePublic},
		{http.MethodGet, "/api/v1/ws/locations/:id", RateLimitTypePublic},
		{http.MethodGet, "", RateLimitTypeDefault},
	}
	for _, tt := range tests {
		if got := getRateLimitType(tt.method, tt.path); got != tt.want {
			t.Errorf("getRateLimitType(%s %q) = %s, want %s", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware(NewMemoryLimiter(testConfig())))
	engine.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Header().Get("X-RateLimit-Limit") != "2" {
			t.Errorf("X-RateLimit-Limit = %q", w.Header().Get("X-RateLimit-Limit"))
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}
