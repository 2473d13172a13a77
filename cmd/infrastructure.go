package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"wastetrack/internal/adapters/out/realtime"
	"wastetrack/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects to PostgreSQL.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// NewNotifier returns the Redis notifier when REDIS_ADDR is set and the in-process one
// otherwise. The returned function releases the Redis connection.
func NewNotifier(ctx context.Context, cfg Config, log *slog.Logger) (ports.RouteProcessNotifier, func() error, error) {
	if cfg.RedisAddr == "" {
		log.InfoContext(ctx, "REDIS_ADDR not set, route notifications stay in process")
		return realtime.NewMemoryNotifier(log), func() error { return nil }, nil
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connect to redis %s: %w", cfg.RedisAddr, err)
	}
	return realtime.NewRedisNotifier(rdb, cfg.RedisChannelPrefix, log), rdb.Close, nil
}
