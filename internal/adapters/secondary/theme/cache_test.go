package theme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

func testTheme(name string) *entities.Theme {
	return &entities.Theme{Name: name, Stylesheet: "body{}"}
}

func TestMemoryCache_GetSet(t *testing.T) {
	cache := NewMemoryCache(10, time.Hour)
	cache.Set("a", testTheme("a"))

	got, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.Name)

	_, ok = cache.Get("missing")
	assert.False(t, ok)

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 10, stats.MaxSize)
}

func TestMemoryCache_Expiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(10, time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set("a", testTheme("a"))

	now = now.Add(30 * time.Second)
	_, ok := cache.Get("a")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Stats().Size)
}

func TestMemoryCache_NoTTL(t *testing.T) {
	now := time.Now()
	cache := NewMemoryCache(0, 0)
	cache.now = func() time.Time { return now }

	cache.Set("a", testTheme("a"))
	now = now.Add(365 * 24 * time.Hour)

	_, ok := cache.Get("a")
	assert.True(t, ok)
}

func TestMemoryCache_EvictLRU(t *testing.T) {
	now := time.Now()
	cache := NewMemoryCache(2, 0)
	cache.now = func() time.Time { return now }

	cache.Set("a", testTheme("a"))
	now = now.Add(time.Second)
	cache.Set("b", testTheme("b"))
	now = now.Add(time.Second)
	cache.Get("a")
	now = now.Add(time.Second)

	cache.Set("c", testTheme("c"))

	_, okA := cache.Get("a")
	_, okB := cache.Get("b")
	_, okC := cache.Get("c")
	assert.True(t, okA)
	assert.False(t, okB, "b was least recently used")
	assert.True(t, okC)
	assert.Equal(t, int64(1), cache.Stats().Evictions)
}

func TestMemoryCache_RemoveClear(t *testing.T) {
	cache := NewMemoryCache(10, 0)
	cache.Set("a", testTheme("a"))
	cache.Set("b", testTheme("b"))

	cache.Remove("a")
	_, ok := cache.Get("a")
	assert.False(t, ok)

	cache.Clear()
	assert.Equal(t, 0, cache.Stats().Size)
}
