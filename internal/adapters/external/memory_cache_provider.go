package external

import (
	"context"
	"sync"
	"time"

	"forecast.app/pkg/errors"
)

// MemoryCacheProvider is a process-local ports.CacheProvider. Expired entries
// are dropped lazily on access.
type MemoryCacheProvider struct {
	mu    sync.Mutex
	items map[string]memoryCacheItem
	now   func() time.Time
}

type memoryCacheItem struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryCacheProvider() *MemoryCacheProvider {
	return &MemoryCacheProvider{
		items: make(map[string]memoryCacheItem),
		now:   time.Now,
	}
}

func (c *MemoryCacheProvider) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		return nil, errors.NewNotFoundError("cache miss")
	}

	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, nil
}

func (c *MemoryCacheProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = memoryCacheItem{value: stored, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCacheProvider) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

func (c *MemoryCacheProvider) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]memoryCacheItem)
	return nil
}

// Len reports the number of live entries
func (c *MemoryCacheProvider) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.items {
		if _, ok := c.lookup(key); ok {
			n++
		}
	}
	return n
}

// lookup must be called with mu held
func (c *MemoryCacheProvider) lookup(key string) (memoryCacheItem, bool) {
	item, ok := c.items[key]
	if !ok {
		return memoryCacheItem{}, false
	}
	if !c.now().Before(item.expiresAt) {
		delete(c.items, key)
		return memoryCacheItem{}, false
	}
	return item, true
}
