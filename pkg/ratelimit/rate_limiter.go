package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"letsparkit/internal/shared/config"
	"letsparkit/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type RateLimitType string

const (
	RateLimitTypeDefault         RateLimitType = "default"
	RateLimitTypePublic          RateLimitType = "public"
	RateLimitTypeAuth            RateLimitType = "auth"
	RateLimitTypeBooking         RateLimitType = "booking"
	RateLimitTypeBookingCritical RateLimitType = "booking_critical"
	RateLimitTypeAdmin           RateLimitType = "admin"
	RateLimitTypeHealth          RateLimitType = "health"
)

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// Limiter decides whether a client may issue another request of a class
type Limiter interface {
	IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error)
}

// New returns the Redis sliding window limiter when a client is given and
// the in-process token bucket limiter otherwise
func New(client *redis.Client, cfg config.RateLimitConfig) Limiter {
	if client != nil {
		return NewRedisLimiter(client, cfg)
	}
	return NewMemoryLimiter(cfg)
}

type policy struct {
	cfg         config.RateLimitConfig
	whitelisted map[string]struct{}
}

func newPolicy(cfg config.RateLimitConfig) policy {
	p := policy{cfg: cfg, whitelisted: make(map[string]struct{}, len(cfg.WhitelistedIPs))}
	for _, ip := range cfg.WhitelistedIPs {
		p.whitelisted[ip] = struct{}{}
	}
	return p
}

func (p policy) limit(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return p.cfg.PublicRequests
	case RateLimitTypeAuth:
		return p.cfg.AuthRequests
	case RateLimitTypeBooking:
		return p.cfg.BookingRequests
	case RateLimitTypeBookingCritical:
		return p.cfg.BookingCriticalRequests
	case RateLimitTypeAdmin:
		return p.cfg.AdminRequests
	case RateLimitTypeHealth:
		return p.cfg.HealthRequests
	default:
		return p.cfg.DefaultRequests
	}
}

// bypass reports a pass-through result when limiting is off for the client
func (p policy) bypass(clientIP string, limit int) (*Result, bool) {
	if _, ok := p.whitelisted[clientIP]; p.cfg.Enabled && !ok {
		return nil, false
	}
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit,
		ResetTime: time.Now().Add(p.cfg.WindowDuration).Unix(),
	}, true
}

// Sliding window over a sorted set scored in milliseconds
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local window_start = tonumber(ARGV[1])
	local now = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])
	local member = ARGV[5]

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current_count = redis.call('ZCARD', key)
	if current_count >= limit then
		redis.call('PEXPIRE', key, window_ms)
		return {0, 0}
	end

	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window_ms)
	return {1, limit - current_count - 1}
`)

// RedisLimiter shares counters between instances through Redis
type RedisLimiter struct {
	client *redis.Client
	policy policy
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{client: client, policy: newPolicy(cfg), now: time.Now}
}

func (r *RedisLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.policy.limit(limitType)
	if res, ok := r.policy.bypass(clientIP, limit); ok {
		return res, nil
	}

	now := r.now()
	window := r.policy.cfg.WindowDuration
	key := constants.BuildRateLimitKey(clientIP, string(limitType))

	values, err := slidingWindow.Run(ctx, r.client, []string{key},
		now.Add(-window).UnixMilli(),
		now.UnixMilli(),
		limit,
		window.Milliseconds(),
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("unexpected redis response: %v", values)
	}

	return &Result{
		Allowed:   values[0] == 1,
		Limit:     limit,
		Remaining: int(values[1]),
		ResetTime: now.Add(window).Unix(),
	}, nil
}

// MemoryLimiter keeps one token bucket per client and class in process
type MemoryLimiter struct {
	policy  policy
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	now     func() time.Time
}

func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{policy: newPolicy(cfg), buckets: make(map[string]*rate.Limiter), now: time.Now}
}

func (m *MemoryLimiter) IsAllowed(_ context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := m.policy.limit(limitType)
	if res, ok := m.policy.bypass(clientIP, limit); ok {
		return res, nil
	}

	key := constants.BuildRateLimitKey(clientIP, string(limitType))
	window := m.policy.cfg.WindowDuration

	m.mu.Lock()
	bucket, ok := m.buckets[key]
	if !ok {
		// limit requests per window, all of them available as a burst
		bucket = rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), limit)
		m.buckets[key] = bucket
	}
	m.mu.Unlock()

	now := m.now()
	allowed := bucket.AllowN(now, 1)
	remaining := int(bucket.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(window).Unix(),
	}, nil
}
