package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"propinvest/internal/config"
)

// ErrDisabled is returned when REDIS_ADDR is not set.
var ErrDisabled = errors.New("redis disabled")

func OpenRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, ErrDisabled
	}
	r := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}
