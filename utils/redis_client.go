package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tanoeluis/VibrantBlog/config"
)

// NewRedisClient returns a client for the configured Redis, or nil when no host is set.
// A failed ping is logged but not fatal; callers fall back to in-process state.
func NewRedisClient(cfg config.AppConfig, log *zap.Logger) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}
	rc := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		log.Warn("redis ping failed", zap.String("addr", rc.Options().Addr), zap.Error(err))
	}
	return rc
}
