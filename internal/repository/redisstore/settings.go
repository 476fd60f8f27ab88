package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/snortview/internal/infra"
)

// SettingsStore — настройки БД в одном hash, по полю на запись
type SettingsStore struct {
	rdb *redis.Client
	key string
}

func NewSettingsStore(rdb *redis.Client) *SettingsStore {
	return &SettingsStore{rdb: rdb, key: infra.RedisKeyDatabaseSettings}
}

func (s *SettingsStore) LoadEntries(ctx context.Context) (map[string]string, error) {
	entries, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", s.key, err)
	}
	return entries, nil
}

func (s *SettingsStore) SaveEntries(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	values := make([]interface{}, 0, 2*len(entries))
	for k, v := range entries {
		values = append(values, k, v)
	}
	if err := s.rdb.HSet(ctx, s.key, values...).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", s.key, err)
	}
	return nil
}
