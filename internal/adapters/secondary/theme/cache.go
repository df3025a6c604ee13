package theme

import (
	"sync"
	"time"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// MemoryCache keeps loaded themes so live reload does not re-read them
type MemoryCache struct {
	mu      sync.Mutex
	themes  map[string]*cachedTheme
	maxSize int
	ttl     time.Duration
	stats   entities.CacheStats
	now     func() time.Time
}

type cachedTheme struct {
	theme     *entities.Theme
	expiresAt time.Time
	lastHit   time.Time
}

// NewMemoryCache creates a cache; a ttl of 0 never expires entries and a
// maxSize of 0 is unbounded.
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		themes:  make(map[string]*cachedTheme),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a cached theme
func (c *MemoryCache) Get(name string) (*entities.Theme, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.themes[name]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	now := c.now()
	if !cached.expiresAt.IsZero() && now.After(cached.expiresAt) {
		delete(c.themes, name)
		c.stats.Misses++
		return nil, false
	}

	cached.lastHit = now
	c.stats.Hits++
	return cached.theme, true
}

// Set stores a theme, evicting the least recently used one when full
func (c *MemoryCache) Set(name string, theme *entities.Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.themes[name]; !exists && c.maxSize > 0 && len(c.themes) >= c.maxSize {
		c.evictLRU()
	}

	now := c.now()
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = now.Add(c.ttl)
	}

	c.themes[name] = &cachedTheme{theme: theme, expiresAt: expiresAt, lastHit: now}
}

// Remove drops a theme from the cache
func (c *MemoryCache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.themes, name)
}

// Clear drops every cached theme
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.themes = make(map[string]*cachedTheme)
}

func (c *MemoryCache) evictLRU() {
	var (
		evictName string
		oldest    time.Time
	)
	for name, cached := range c.themes {
		if evictName == "" || cached.lastHit.Before(oldest) {
			evictName, oldest = name, cached.lastHit
		}
	}
	if evictName != "" {
		delete(c.themes, evictName)
		c.stats.Evictions++
	}
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() entities.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = len(c.themes)
	stats.MaxSize = c.maxSize
	return stats
}
