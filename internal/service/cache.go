package service

import (
	"context"
	"encoding/json"
	"time"

	"tryout_backend/internal/model"
	"tryout_backend/pkg/logger"
	"tryout_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const tryoutDetailKeyPrefix = "tryout:detail:"

// TryoutCache 测验详情缓存（cache-aside），Redis 为 nil 时所有操作为空操作
type TryoutCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewTryoutCache(rdb *redis.Client, ttl time.Duration) *TryoutCache {
	return &TryoutCache{Redis: rdb, TTL: ttl}
}

func (c *TryoutCache) enabled() bool {
	return c != nil && c.Redis != nil
}

func (c *TryoutCache) Get(ctx context.Context, id string) (*model.Tryout, bool) {
	if !c.enabled() {
		return nil, false
	}

	val, err := c.Redis.Get(ctx, tryoutDetailKeyPrefix+id).Result()
	if err == redis.Nil {
		monitoring.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		logger.Log.Warn("tryout cache read failed", zap.String("tryoutId", id), zap.Error(err))
		monitoring.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}

	var t model.Tryout
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		c.Invalidate(ctx, id)
		monitoring.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	monitoring.CacheLookups.WithLabelValues("hit").Inc()
	return &t, true
}

func (c *TryoutCache) Set(ctx context.Context, t *model.Tryout) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, tryoutDetailKeyPrefix+t.ID, data, c.TTL).Err(); err != nil {
		logger.Log.Warn("tryout cache write failed", zap.String("tryoutId", t.ID), zap.Error(err))
	}
}

func (c *TryoutCache) Invalidate(ctx context.Context, id string) {
	if !c.enabled() {
		return
	}
	if err := c.Redis.Del(ctx, tryoutDetailKeyPrefix+id).Err(); err != nil {
		logger.Log.Warn("tryout cache invalidate failed", zap.String("tryoutId", id), zap.Error(err))
	}
}
