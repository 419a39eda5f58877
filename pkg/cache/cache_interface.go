package cache

import (
	"context"
	"time"
)

// Cache is the contract the services use for cache-aside reads and short-lived tokens.
type Cache interface {
	// Get unmarshals the value stored at key into dest.
	// found is false on a miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern such as "books:count*".
	DeletePattern(ctx context.Context, pattern string) error

	Exists(ctx context.Context, key string) (bool, error)

	Ping(ctx context.Context) error
}
