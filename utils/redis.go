package utils

import (
	"context"
	"log"
	"time"

	"github.com/mbokatech/hall-management-backend/config"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared client; nil when Redis is not configured, in
// which case every cache helper is a no-op.
var RedisClient *redis.Client

// InitRedis connects the shared Redis client
func InitRedis(cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		log.Println("⚠️ REDIS_ADDR not set, caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	RedisClient = client
	log.Println("✅ Redis connected")
	return nil
}

// CacheGet returns the cached value for key, or "" on miss/disabled cache
func CacheGet(ctx context.Context, key string) string {
	if RedisClient == nil {
		return ""
	}
	val, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// CacheSet stores value under key with a TTL
func CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("⚠️ Cache set failed for %s: %v", key, err)
	}
}

// CacheDel drops a cached key (used on hall mutation to invalidate details)
func CacheDel(ctx context.Context, keys ...string) {
	if RedisClient == nil || len(keys) == 0 {
		return
	}
	if err := RedisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ Cache invalidation failed: %v", err)
	}
}
