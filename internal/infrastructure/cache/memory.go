package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vitos/crypto_indicator_api/internal/domain"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is a process-local fallback for when Redis is unreachable.
// Staleness is checked at read time; a background janitor drops expired
// entries so the map does not grow without bound.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	cleaner *time.Ticker
	done    chan struct{}
}

func NewMemoryCache() *MemoryCache {
	m := &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	m.cleaner = time.NewTicker(time.Minute)
	go m.backgroundCleaner()
	return m
}

func (m *MemoryCache) backgroundCleaner() {
	for {
		select {
		case <-m.cleaner.C:
			m.mu.Lock()
			now := m.now()
			for k, e := range m.entries {
				if now.After(e.expiresAt) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			m.cleaner.Stop()
			return
		}
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expiresAt) {
		return nil, domain.ErrCacheMiss
	}
	// Copy so callers cannot mutate the stored payload.
	return append([]byte(nil), e.payload...), nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{
		payload:   append([]byte(nil), payload...),
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

func (m *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryCache) Close() error {
	close(m.done)
	return nil
}

// SetClock replaces the time source. Intended for expiry tests.
func (m *MemoryCache) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
