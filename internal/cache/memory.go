package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache implements Cache using in-process storage. It is the default
// when no Redis instance is configured.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]*memoryItem
	done chan struct{}
}

type memoryItem struct {
	value      []byte
	expiration time.Time
}

// NewMemoryCache creates an in-memory cache and starts its sweep goroutine.
func NewMemoryCache() *MemoryCache {
	mc := &MemoryCache{
		data: make(map[string]*memoryItem),
		done: make(chan struct{}),
	}

	go mc.sweep()

	return mc
}

// Get retrieves a value. Expired entries count as misses; the sweeper
// removes them lazily.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.data[key]
	if !ok || time.Now().After(item.expiration) {
		return nil, ErrCacheMiss
	}

	return item.value, nil
}

// Set stores a value with a TTL.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = &memoryItem{
		value:      value,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a value.
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryCache) sweep() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			now := time.Now()
			for key, item := range m.data {
				if now.After(item.expiration) {
					delete(m.data, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Close stops the sweep goroutine.
func (m *MemoryCache) Close() error {
	close(m.done)
	return nil
}
