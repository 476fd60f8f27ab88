package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/snortview/internal/audit"
	"github.com/xela07ax/snortview/internal/domain"
	"github.com/xela07ax/snortview/internal/infra"
)

// Интеграционные тесты: нужен живой Redis в SNORTVIEW_TEST_REDIS_ADDR
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("SNORTVIEW_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SNORTVIEW_TEST_REDIS_ADDR not set")
	}
	rdb, err := infra.NewRedisClient(context.Background(), infra.RedisConfig{Addr: addr})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestSessionStoreRedis(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(testClient(t))
	user := domain.User{ID: 1, Username: "admin", IsActive: true, Role: domain.RoleAdmin}

	if err := s.Create(ctx, "test-jti", user, time.Minute); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "test-jti")
	if err != nil || got != user {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if err := s.Delete(ctx, "test-jti"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "test-jti"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("after delete: %v", err)
	}
}

func TestSettingsStoreRedis(t *testing.T) {
	ctx := context.Background()
	rdb := testClient(t)
	rdb.Del(ctx, infra.RedisKeyDatabaseSettings)
	t.Cleanup(func() { rdb.Del(context.Background(), infra.RedisKeyDatabaseSettings) })

	s := NewSettingsStore(rdb)
	cfg := domain.DatabaseConfig{Host: "db", Port: 5432, Database: "snort", Username: "u", SSL: true}
	if err := s.SaveEntries(ctx, cfg.Entries()); err != nil {
		t.Fatal(err)
	}
	entries, err := s.LoadEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := domain.DatabaseConfigFromEntries(entries); got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestAuditLogRedis(t *testing.T) {
	ctx := context.Background()
	rdb := testClient(t)
	rdb.Del(ctx, infra.RedisKeyAuditLog)
	t.Cleanup(func() { rdb.Del(context.Background(), infra.RedisKeyAuditLog) })

	log := NewAuditLog(rdb, 2)
	batch := []audit.Event{{ID: "1", Action: "a"}, {ID: "2", Action: "b"}, {ID: "3", Action: "c"}}
	if err := log.WriteBatch(ctx, batch); err != nil {
		t.Fatal(err)
	}
	events, err := log.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].ID != "3" || events[1].ID != "2" {
		t.Fatalf("recent = %+v", events)
	}
}

func TestStatsCacheRedis(t *testing.T) {
	ctx := context.Background()
	rdb := testClient(t)
	key := infra.StatsKey("test", "test", "test")
	rdb.Del(ctx, key)
	t.Cleanup(func() { rdb.Del(context.Background(), key) })

	c := NewStatsCache(rdb, time.Minute)
	if _, ok, err := c.Get(ctx, key); ok || err != nil {
		t.Fatalf("cold cache: ok=%v err=%v", ok, err)
	}
	want := domain.DashboardStats{BlockedTotal: 3, Total: 9, TopSourceIPs: []domain.TopItem{{Label: "1.1.1.1", Count: 9}}}
	if err := c.Set(ctx, key, want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok || got.Total != 9 || got.BlockedTotal != 3 || len(got.TopSourceIPs) != 1 {
		t.Fatalf("warm cache = %+v ok=%v err=%v", got, ok, err)
	}
}
