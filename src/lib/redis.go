package lib

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// CacheCheckoutURL remembers the provider checkout page for a pending charge
// so the client can re-fetch it without a new gateway call. Cache failures
// are logged and swallowed; the charge is already persisted.
func CacheCheckoutURL(ctx context.Context, reference, checkoutURL string, ttl time.Duration) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.SetEx(ctx, reference, checkoutURL, ttl).Err(); err != nil {
		log.Printf("Failed to cache checkout url for %s: %s\n", reference, err.Error())
	}
}

// LookupCheckoutURL returns the cached checkout page for a reference, or
// empty when the entry is missing or redis is unavailable.
func LookupCheckoutURL(ctx context.Context, reference string) string {
	rdb := GetRedisClient()
	if rdb == nil {
		return ""
	}
	val, err := rdb.Get(ctx, reference).Result()
	if err == redis.Nil {
		return ""
	} else if err != nil {
		log.Printf("Error retrieving checkout url for %s: %s\n", reference, err.Error())
		return ""
	}
	return val
}
