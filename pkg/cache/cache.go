// Package cache defines short-lived key/value storage used for activation codes.
package cache

import (
	"context"
	"time"
)

// CodeStore keeps values that expire after a TTL. Get returns "" and no
// error for a missing or expired key.
type CodeStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
