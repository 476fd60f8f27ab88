package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/snortview/internal/audit"
	"github.com/xela07ax/snortview/internal/infra"
)

// AuditLog — журнал аудита в Redis list: LPUSH новых событий и LTRIM до retain
type AuditLog struct {
	rdb    *redis.Client
	key    string
	retain int64
}

func NewAuditLog(rdb *redis.Client, retain int) *AuditLog {
	if retain <= 0 {
		retain = 1000
	}
	return &AuditLog{rdb: rdb, key: infra.RedisKeyAuditLog, retain: int64(retain)}
}

func (a *AuditLog) WriteBatch(ctx context.Context, events []audit.Event) error {
	if len(events) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal audit event %s: %w", e.ID, err)
		}
		values = append(values, data)
	}

	_, err := a.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, a.key, values...)
		pipe.LTrim(ctx, a.key, 0, a.retain-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write audit batch: %w", err)
	}
	return nil
}

func (a *AuditLog) Recent(ctx context.Context, limit int) ([]audit.Event, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	raw, err := a.rdb.LRange(ctx, a.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %s: %w", a.key, err)
	}

	events := make([]audit.Event, 0, len(raw))
	for _, item := range raw {
		var e audit.Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}
