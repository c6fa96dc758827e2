package services

import (
	"context"
	"fmt"
	"time"

	"motora/pkg/cache"
	"motora/pkg/logger"
)

// Cache keys and channels.
const (
	pricingConfigKeyFmt = "pricing:config:%s:%s"
	availabilityKeyFmt  = "pricing:rules:%s:%s"

	// RecomputeChannel carries opaque change signals; subscribers
	// re-fetch, they never interpret the payload.
	RecomputeChannel = "motora:recompute"

	// ConfigCacheTTL bounds how stale a cached pricing configuration
	// or rule set can get if an invalidation is missed.
	ConfigCacheTTL = 5 * time.Minute
)

// CacheService is the slice of the redis surface the repositories and
// services use. Kept as an interface so tests run without redis.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Publish(ctx context.Context, channel string, message interface{}) error
}

type cacheService struct {
	cache  *cache.RedisCache
	logger *logger.Logger
}

func NewCacheService(redisCache *cache.RedisCache, log *logger.Logger) CacheService {
	return &cacheService{
		cache:  redisCache,
		logger: log,
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.cache.Get(ctx, key, dest)
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.cache.Set(ctx, key, value, expiration)
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	return s.cache.Delete(ctx, keys...)
}

func (s *cacheService) Publish(ctx context.Context, channel string, message interface{}) error {
	return s.cache.Publish(ctx, channel, message)
}

func PricingConfigKey(serviceType, region string) string {
	return fmt.Sprintf(pricingConfigKeyFmt, serviceType, region)
}

func AvailabilityKey(serviceType, region string) string {
	return fmt.Sprintf(availabilityKeyFmt, serviceType, region)
}
