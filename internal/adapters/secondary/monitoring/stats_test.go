package monitoring

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats_Counters(t *testing.T) {
	stats := NewStats()

	stats.RecordHTTPRequest()
	stats.RecordHTTPRequest()
	stats.RecordWebSocketConnection()

	snap := stats.Snapshot()
	assert.Equal(t, int64(2), snap.HTTPRequests)
	assert.Equal(t, int64(1), snap.WebSocketConnections)
	assert.Equal(t, int64(0), snap.DecksServed)
	assert.True(t, snap.LastDeckAt.IsZero())
	assert.Positive(t, snap.Goroutines)
	assert.True(t, snap.Healthy)
}

func TestStats_RecordDeck(t *testing.T) {
	stats := NewStats()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stats.now = func() time.Time { return at }

	stats.RecordDeck(10)
	snap := stats.Snapshot()
	assert.Equal(t, int64(1), snap.DecksServed)
	assert.Equal(t, at, snap.LastDeckAt)
	assert.Equal(t, 10.0, snap.AverageSlides)

	stats.RecordDeck(20)
	assert.InDelta(t, 11.0, stats.Snapshot().AverageSlides, 1e-9)
}

func TestStats_Uptime(t *testing.T) {
	stats := NewStats()
	start := stats.start
	stats.now = func() time.Time { return start.Add(90 * time.Second) }

	assert.Equal(t, 90*time.Second, stats.Uptime())
	assert.Equal(t, "1m30s", stats.Snapshot().Uptime)
}

func TestStats_Concurrent(t *testing.T) {
	stats := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.RecordHTTPRequest()
			stats.RecordDeck(3)
			_ = stats.Snapshot()
		}()
	}
	wg.Wait()

	snap := stats.Snapshot()
	assert.Equal(t, int64(50), snap.HTTPRequests)
	assert.Equal(t, int64(50), snap.DecksServed)
	assert.InDelta(t, 3.0, snap.AverageSlides, 1e-9)
}

func TestSafeUint64ToInt64(t *testing.T) {
	assert.Equal(t, int64(42), safeUint64ToInt64(42))
	assert.Equal(t, int64(math.MaxInt64), safeUint64ToInt64(math.MaxUint64))
}
