package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/snortview/internal/domain"
)

// StatsCache мемоизирует DashboardStats по ключу диапазона дат.
// Набор алертов неизменяем, поэтому инвалидация не нужна, только TTL.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Get: ok == false при промахе
func (c *StatsCache) Get(ctx context.Context, key string) (domain.DashboardStats, bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DashboardStats{}, false, nil
	}
	if err != nil {
		return domain.DashboardStats{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return domain.DashboardStats{}, false, fmt.Errorf("decode cached stats: %w", err)
	}
	return stats, true, nil
}

func (c *StatsCache) Set(ctx context.Context, key string, stats domain.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
