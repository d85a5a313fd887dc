package auth

import (
	"context"
	"sync"
	"time"

	"letsparkit/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers signed-out token ids until the tokens expire
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationStore keeps revocations in process memory
func NewMemoryRevocationStore() RevocationStore {
	return &memoryRevocations{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *memoryRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	if until.After(now) {
		m.revoked[tokenID] = until
	}
	return nil
}

func (m *memoryRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		delete(m.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

type redisRevocations struct {
	client *redis.Client
}

// NewRedisRevocationStore stores revocations as keys that expire with the token
func NewRedisRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocations{client: client}
}

func (r *redisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, constants.BuildRevokedTokenKey(tokenID), "1", ttl).Err()
}

func (r *redisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, constants.BuildRevokedTokenKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
