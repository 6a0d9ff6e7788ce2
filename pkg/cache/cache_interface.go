package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract used by services. Values are JSON encoded.
type Cache interface {
	// Get decodes the cached value into dest. found is false on a miss and
	// dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern, e.g. "products:*".
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
