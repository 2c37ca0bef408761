package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const revokedAtKeyPrefix = "auth:revoked_at:"

// TokenStoreInterface defines the interface for token revocation state.
type TokenStoreInterface interface {
	RevokeAll(ctx context.Context, userID uint) error
	IsRevoked(ctx context.Context, userID uint, issuedAtNano int64) (bool, error)
}

// watermarkCache is the subset of the cache client the store needs.
type watermarkCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TokenStore tracks a per-user revocation watermark in Redis. Logout writes
// the current time; any token issued at or before that instant is rejected.
// This revokes every outstanding token for the user in one write, without
// enumerating them.
type TokenStore struct {
	cache watermarkCache
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache watermarkCache) *TokenStore {
	return &TokenStore{cache: cache}
}

// RevokeAll invalidates every token issued to the user up to now.
// Idempotent: a later call simply moves the watermark forward.
func (s *TokenStore) RevokeAll(ctx context.Context, userID uint) error {
	if s.cache == nil {
		return nil
	}
	key := revokedAtKeyPrefix + strconv.FormatUint(uint64(userID), 10)
	now := strconv.FormatInt(time.Now().UnixNano(), 10)
	// Keep the watermark as long as a revoked token could still be presented.
	return s.cache.Set(ctx, key, []byte(now), TokenExpiry)
}

// IsRevoked reports whether a token issued at issuedAtNano has been revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, userID uint, issuedAtNano int64) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	key := revokedAtKeyPrefix + strconv.FormatUint(uint64(userID), 10)
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return false, nil
	}

	revokedAt, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse revocation watermark: %w", err)
	}
	return issuedAtNano <= revokedAt, nil
}
