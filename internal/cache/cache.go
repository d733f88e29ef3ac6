// Package cache provides the key-value cache the services read through.
// Entries carry a sliding expiration refreshed on access and an absolute
// cap past which the entry is gone regardless of use. The store is always
// authoritative; a cold or empty cache only costs an extra read.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, sliding, absolute time.Duration)
	Remove(ctx context.Context, key string)
}
