package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sunthewhat/event-cert-api/common"
)

// InitRedis connects when a redis address is configured. Without one the cache
// stays in process and batch emails run without the queue.
func InitRedis() error {
	if common.Config.Redis == nil || *common.Config.Redis == "" {
		slog.Info("Redis not configured, using in-memory cache")
		return nil
	}

	client, err := New(context.Background(), *common.Config.Redis)
	if err != nil {
		return err
	}

	slog.Info("Redis Connected!", "addr", *common.Config.Redis)
	common.Redis = client
	return nil
}

func New(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
