package global

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

var (
	DB *gorm.DB
	// RedisDB is nil when caching is not configured; callers must check.
	RedisDB *redis.Client
)
