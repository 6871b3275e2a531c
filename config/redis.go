package config

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/codewith-lab/newsdesk/global"
)

// initRedis wires the optional cache. A missing addr or an unreachable
// server leaves global.RedisDB nil and every read goes straight to storage.
func initRedis() {
	redisConf := AppConfig.Redis
	if redisConf.Addr == "" {
		log.Println("Redis not configured, caching disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisConf.Addr,
		Password: redisConf.Password,
		DB:       redisConf.DB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("Failed to connect to Redis (%v), caching disabled", err)
		return
	}

	global.RedisDB = client
}
