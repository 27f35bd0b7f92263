package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

type entry struct {
	value   []byte
	expires time.Time
}

// MemoryBackend keeps entries in process. Expiry is judged by the injected clock.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   Clock
}

func NewMemoryBackend(clock Clock) *MemoryBackend {
	if clock == nil {
		clock = SystemClock
	}
	return &MemoryBackend{entries: make(map[string]entry), clock: clock}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || !m.clock.Now().Before(e.expires) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = entry{value: value, expires: m.clock.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) DeletePattern(_ context.Context, pattern string) (int, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
			n++
		}
	}
	return n, nil
}

func (m *MemoryBackend) Purge(_ context.Context) int {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for key, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, key)
			n++
		}
	}
	return n
}

func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
