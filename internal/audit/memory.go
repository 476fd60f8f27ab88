package audit

import (
	"context"
	"sync"
)

// MemoryStorage — кольцевой буфер последних событий, используется без Redis
type MemoryStorage struct {
	mu     sync.RWMutex
	events []Event
	retain int
}

func NewMemoryStorage(retain int) *MemoryStorage {
	if retain <= 0 {
		retain = 1000
	}
	return &MemoryStorage{retain: retain}
}

func (m *MemoryStorage) WriteBatch(_ context.Context, events []Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, events...)
	if over := len(m.events) - m.retain; over > 0 {
		m.events = append([]Event(nil), m.events[over:]...)
	}
	return nil
}

// Recent отдает события от новых к старым
func (m *MemoryStorage) Recent(_ context.Context, limit int) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.events) {
		limit = len(m.events)
	}
	out := make([]Event, 0, limit)
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}
