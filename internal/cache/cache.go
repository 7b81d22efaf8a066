package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is not found in cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the cache interface used for resolved session identities.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdentityKey builds the cache key for a resolved identity, keyed by the
// bearer token's subject claim.
func IdentityKey(subject string) string {
	return "identity:" + subject
}
