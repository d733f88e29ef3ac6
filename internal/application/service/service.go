// Package service holds the business rules between the HTTP layer and the
// repositories: existence checks, stock reservation, and the read-through
// cache policy.
package service

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

// Cache is the key-value port the services read through. Entries expire on
// a sliding window refreshed by access, capped by an absolute deadline.
// The store is always authoritative; correctness never depends on a hit.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, sliding, absolute time.Duration)
	Remove(ctx context.Context, key string)
}

const (
	slidingTTL = 10 * time.Minute
	detailTTL  = 30 * time.Minute // single-entity views
	listTTL    = 20 * time.Minute // collection views
)

// cacheGet unmarshals a cached value into T; a malformed entry counts as a
// miss, the store will repopulate it.
func cacheGet[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var v T
	raw, ok := c.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		c.Remove(ctx, key)
		return v, false
	}
	return v, true
}

func cacheSet(ctx context.Context, c Cache, key string, v any, sliding, absolute time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw, sliding, absolute)
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
