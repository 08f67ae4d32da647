package repository

import (
	"context"
	"time"
)

// CacheRepository memoizes serialized results. A zero ttl keeps the value
// until it is evicted by the backend.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
