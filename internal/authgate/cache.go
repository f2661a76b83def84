package authgate

import (
	"context"
	"sync"
	"time"

	"github.com/lotwise/dealerd/internal/domain"
)

// ProfileCache stores resolved profiles for a bounded time. Implementations
// must be safe for concurrent use. The gate treats every cache failure as a
// miss, so implementations backed by a remote store may degrade silently.
type ProfileCache interface {
	Get(ctx context.Context, key string) (*domain.Profile, bool)
	Set(ctx context.Context, key string, p *domain.Profile, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type memoryEntry struct {
	profile   *domain.Profile
	expiresAt time.Time
}

// MemoryCache is a process-local ProfileCache. Expired entries are dropped
// on read; there is no background sweep.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// NewMemoryCacheWithClock creates a cache with an injected clock for tests.
func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	return e.profile, true
}

func (c *MemoryCache) Set(_ context.Context, key string, p *domain.Profile, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		profile:   p,
		expiresAt: c.now().Add(ttl),
	}
}

func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}
