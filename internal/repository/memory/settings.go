package memory

import (
	"context"
	"maps"
	"sync"
)

// SettingsStore — строковые записи настроек, аналог localStorage
type SettingsStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{entries: make(map[string]string)}
}

func (s *SettingsStore) LoadEntries(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.entries), nil
}

func (s *SettingsStore) SaveEntries(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.entries, entries)
	return nil
}
