package memory

import (
	"context"
	"sync"

	"github.com/xela07ax/snortview/internal/domain"
)

const defaultStatsEntries = 256

// StatsCache — in-memory кэш статистики дашборда для режима без Redis.
// Набор алертов неизменяем, поэтому записи не устаревают; при переполнении кэш сбрасывается целиком.
type StatsCache struct {
	mu         sync.RWMutex
	entries    map[string]domain.DashboardStats
	maxEntries int
}

func NewStatsCache(maxEntries int) *StatsCache {
	if maxEntries <= 0 {
		maxEntries = defaultStatsEntries
	}
	return &StatsCache{entries: make(map[string]domain.DashboardStats), maxEntries: maxEntries}
}

func (c *StatsCache) Get(_ context.Context, key string) (domain.DashboardStats, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[key]
	return s, ok, nil
}

func (c *StatsCache) Set(_ context.Context, key string, stats domain.DashboardStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]domain.DashboardStats)
	}
	c.entries[key] = stats
	return nil
}
