package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryCache is a process-local ResponseCache.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithClock(time.Now)
}

func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		now:   now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Entry, bool, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !c.now().Before(item.expiresAt) {
		c.mu.Lock()
		if current, still := c.items[key]; still && current.expiresAt.Equal(item.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	entry := item.entry
	entry.Body = append([]byte(nil), item.entry.Body...)
	return &entry, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, entry *Entry, ttl time.Duration) error {
	stored := *entry
	stored.Body = append([]byte(nil), entry.Body...)

	c.mu.Lock()
	c.items[key] = memoryItem{entry: stored, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()

	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.items = make(map[string]memoryItem)
	c.mu.Unlock()

	return nil
}
