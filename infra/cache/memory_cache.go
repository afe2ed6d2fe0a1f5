package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/backoffice/pkg/cache"
)

// MemoryCodeStore implements cache.CodeStore in process memory.
type MemoryCodeStore struct {
	entries map[string]cacheEntry
	mu      sync.RWMutex
	now     func() time.Time
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryCodeStore creates a store and starts a janitor that drops expired
// entries until ctx is done.
func NewMemoryCodeStore(ctx context.Context) *MemoryCodeStore {
	c := &MemoryCodeStore{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
	go c.cleanup(ctx, 5*time.Minute)
	return c
}

func (c *MemoryCodeStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCodeStore) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.value, nil
}

func (c *MemoryCodeStore) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *MemoryCodeStore) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			now := c.now()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

var _ cache.CodeStore = (*MemoryCodeStore)(nil)
