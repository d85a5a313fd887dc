package slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"letsparkit/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Lua script for atomic slot holding - prevents two users claiming one slot
var luaAtomicSlotHold = redis.NewScript(`
-- KEYS[1] = slot hold key
-- KEYS[2] = hold id key
-- ARGV[1] = user_id
-- ARGV[2] = hold_id
-- ARGV[3] = slot_id
-- ARGV[4] = location_id
-- ARGV[5] = ttl_seconds
-- ARGV[6] = hold id key prefix

local ttl = tonumber(ARGV[5])
local current = redis.call("GET", KEYS[1])

if current then
    local sep = string.find(current, "|", 1, true)
    local holder = string.sub(current, 1, sep - 1)
    local existing = string.sub(current, sep + 1)
    if holder ~= ARGV[1] then
        return {0, holder}
    end
    -- same user, extend the existing hold
    redis.call("EXPIRE", KEYS[1], ttl)
    redis.call("EXPIRE", ARGV[6] .. existing, ttl)
    return {2, existing}
end

redis.call("SET", KEYS[1], ARGV[1] .. "|" .. ARGV[2], "EX", ttl)
redis.call("HSET", KEYS[2], "slot_id", ARGV[3], "user_id", ARGV[1], "location_id", ARGV[4])
redis.call("EXPIRE", KEYS[2], ttl)
return {1, ARGV[2]}
`)

// Lua script for atomic hold release
var luaAtomicHoldRelease = redis.NewScript(`
-- KEYS[1] = hold id key
-- ARGV[1] = user_id ("" skips the owner check)
-- ARGV[2] = hold_id
-- ARGV[3] = slot hold key prefix

local data = redis.call("HMGET", KEYS[1], "slot_id", "user_id")
if not data[1] then
    return {0, "hold_not_found"}
end
if ARGV[1] ~= "" and data[2] ~= ARGV[1] then
    return {0, "not_owner"}
end

local slot_key = ARGV[3] .. data[1]
if redis.call("GET", slot_key) == data[2] .. "|" .. ARGV[2] then
    redis.call("DEL", slot_key)
end
redis.call("DEL", KEYS[1])
return {1, data[1]}
`)

// Lua script that drops a hold once its holder has booked the slot
var luaAtomicHoldConsume = redis.NewScript(`
-- KEYS[1] = slot hold key
-- ARGV[1] = user_id
-- ARGV[2] = hold id key prefix

local current = redis.call("GET", KEYS[1])
if not current then
    return 0
end
local sep = string.find(current, "|", 1, true)
if string.sub(current, 1, sep - 1) ~= ARGV[1] then
    return 0
end
redis.call("DEL", KEYS[1])
redis.call("DEL", ARGV[2] .. string.sub(current, sep + 1))
return 1
`)

// AtomicRedisHolds handles atomic Redis operations for slot holding
type AtomicRedisHolds struct {
	redis *redis.Client
}

// NewAtomicRedisHolds creates a Redis backed hold manager
func NewAtomicRedisHolds(redisClient *redis.Client) *AtomicRedisHolds {
	return &AtomicRedisHolds{redis: redisClient}
}

// PreloadScripts loads the Lua scripts so the first hold avoids a round trip
func (a *AtomicRedisHolds) PreloadScripts(ctx context.Context) error {
	for _, script := range []*redis.Script{luaAtomicSlotHold, luaAtomicHoldRelease, luaAtomicHoldConsume} {
		if err := script.Load(ctx, a.redis).Err(); err != nil {
			return fmt.Errorf("failed to load hold script: %w", err)
		}
	}
	return nil
}

func (a *AtomicRedisHolds) Hold(ctx context.Context, slotID, locationID, userID string, ttl time.Duration) (*Hold, error) {
	holdID := uuid.NewString()
	keys := []string{constants.BuildSlotHoldKey(slotID), constants.BuildHoldIDKey(holdID)}
	args := []interface{}{
		userID,
		holdID,
		slotID,
		locationID,
		strconv.Itoa(int(ttl.Seconds())),
		constants.KEY_HOLD_ID,
	}

	result, err := luaAtomicSlotHold.Run(ctx, a.redis, keys, args...).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to execute atomic slot hold: %w", err)
	}
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := result[0].(int64)
	if !ok {
		return nil, fmt.Errorf("invalid success flag in Lua script result")
	}
	if success == 0 {
		return nil, ErrSlotHeld
	}

	id, _ := result[1].(string)
	return &Hold{
		ID:         id,
		SlotID:     slotID,
		LocationID: locationID,
		UserID:     userID,
		ExpiresAt:  time.Now().Add(ttl),
	}, nil
}

func (a *AtomicRedisHolds) Release(ctx context.Context, holdID, userID string) error {
	result, err := luaAtomicHoldRelease.Run(ctx, a.redis,
		[]string{constants.BuildHoldIDKey(holdID)},
		userID, holdID, constants.KEY_SLOT_HOLD,
	).Slice()
	if err != nil {
		return fmt.Errorf("failed to execute atomic hold release: %w", err)
	}
	if len(result) != 2 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	if success, _ := result[0].(int64); success == 1 {
		return nil
	}
	if reason, _ := result[1].(string); reason == "not_owner" {
		return ErrNotHoldOwner
	}
	return ErrHoldNotFound
}

func (a *AtomicRedisHolds) Consume(ctx context.Context, slotID, userID string) error {
	err := luaAtomicHoldConsume.Run(ctx, a.redis,
		[]string{constants.BuildSlotHoldKey(slotID)},
		userID, constants.KEY_HOLD_ID,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to consume hold: %w", err)
	}
	return nil
}

func (a *AtomicRedisHolds) Holders(ctx context.Context, slotIDs []string) (map[string]string, error) {
	out := make(map[string]string)
	if len(slotIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(slotIDs))
	for i, id := range slotIDs {
		keys[i] = constants.BuildSlotHoldKey(id)
	}
	values, err := a.redis.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read slot holds: %w", err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if holder, _, found := strings.Cut(s, "|"); found {
			out[slotIDs[i]] = holder
		}
	}
	return out, nil
}
