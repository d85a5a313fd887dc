package constants

import (
	"fmt"
	"time"
)

// Redis key layout: letsparkit:{module}:{operation}:{identifier}

const (
	CACHE_PREFIX = "letsparkit"
)

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_REALTIME_SHORT = 30 * time.Second
	TTL_SLOT_HOLD      = 10 * time.Minute
	TTL_DASHBOARD      = TTL_REALTIME_SHORT
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_DASHBOARD = CACHE_PREFIX + ":analytics:dashboard:admin"

	PATTERN_INVALIDATE_ANALYTICS = CACHE_PREFIX + ":analytics:*"
)

// ================== SLOTS MODULE ==================

const (
	KEY_SLOT_HOLD = CACHE_PREFIX + ":slots:hold:slot:" // + slot-id
	KEY_HOLD_ID   = CACHE_PREFIX + ":slots:hold:id:"   // + hold-id
)

// ================== AUTH MODULE ==================

const (
	KEY_REVOKED_TOKEN = CACHE_PREFIX + ":auth:revoked:" // + token-id
)

// ================== RATE LIMIT ==================

const (
	KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:"
)

// ================== HELPER FUNCTIONS ==================

func BuildSlotHoldKey(slotID string) string {
	return KEY_SLOT_HOLD + slotID
}

func BuildHoldIDKey(holdID string) string {
	return KEY_HOLD_ID + holdID
}

func BuildRevokedTokenKey(tokenID string) string {
	return KEY_REVOKED_TOKEN + tokenID
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s%s:%s", KEY_RATE_LIMIT, clientIP, limitType)
}
