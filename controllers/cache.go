package controllers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	articleCacheTTL = 10 * time.Minute
	// Ticker consumers poll about once a minute; the cache must not outlive
	// that interval.
	breakingNewsCacheTTL = time.Minute

	articleCachePrefix      = "articles:"
	breakingNewsCachePrefix = "breaking-news:"
)

// cacheGet reads a cached JSON value into dest. A nil client or any cache
// error is a miss; the cache is an optimization, never a dependency.
func cacheGet(ctx context.Context, client *redis.Client, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func cacheSet(ctx context.Context, client *redis.Client, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
}

// cacheInvalidate drops every key under a prefix, asynchronously so writes
// never block on the cache.
func cacheInvalidate(client *redis.Client, prefix string) {
	if client == nil {
		return
	}
	go func() {
		ctx := context.Background()
		keys, err := client.Keys(ctx, prefix+"*").Result()
		if err != nil || len(keys) == 0 {
			return
		}
		if err := client.Del(ctx, keys...).Err(); err != nil {
			log.Printf("cache invalidate %s failed: %v", prefix, err)
		}
	}()
}
