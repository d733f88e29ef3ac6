package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// envelope carries the absolute deadline alongside the payload; Redis TTL
// alone only covers the sliding window.
type envelope struct {
	Value []byte `json:"v"`
	Hard  int64  `json:"hard"`  // unix millis
	Slide int64  `json:"slide"` // millis
}

// Redis adapts a shared Redis instance to the Cache contract. The sliding
// window is a PEXPIRE refreshed on every hit, clamped to the absolute
// deadline stored in the envelope.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedis(client *redis.Client, logger *zap.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		r.logger.Warn("redis entry malformed, dropping", zap.String("key", key), zap.Error(err))
		r.client.Del(ctx, key)
		return nil, false
	}

	remaining := time.Until(time.UnixMilli(env.Hard))
	if remaining <= 0 {
		r.client.Del(ctx, key)
		return nil, false
	}

	// Refresh the sliding window; Redis holds the sliding TTL, the
	// envelope holds the cap.
	ttl := time.Duration(env.Slide) * time.Millisecond
	if remaining < ttl {
		ttl = remaining
	}
	if ttl > 0 {
		r.client.PExpire(ctx, key, ttl)
	}

	return env.Value, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, sliding, absolute time.Duration) {
	if sliding > absolute {
		sliding = absolute
	}
	raw, err := json.Marshal(envelope{
		Value: value,
		Hard:  time.Now().Add(absolute).UnixMilli(),
		Slide: sliding.Milliseconds(),
	})
	if err != nil {
		r.logger.Warn("redis entry marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, key, raw, sliding).Err(); err != nil {
		r.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *Redis) Remove(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("redis del failed", zap.String("key", key), zap.Error(err))
	}
}
