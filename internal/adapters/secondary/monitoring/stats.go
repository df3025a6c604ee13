// Package monitoring keeps runtime counters for the preview server.
package monitoring

import (
	"math"
	"runtime"
	"sync"
	"time"
)

const (
	maxHealthyMemory     = int64(500 * 1024 * 1024)
	maxHealthyGoroutines = 1000
)

// Snapshot is a point-in-time copy of the server counters
type Snapshot struct {
	StartTime            time.Time `json:"start_time"`
	Uptime               string    `json:"uptime"`
	DecksServed          int64     `json:"decks_served"`
	LastDeckAt           time.Time `json:"last_deck_at,omitempty"`
	AverageSlides        float64   `json:"average_slides"`
	HTTPRequests         int64     `json:"http_requests"`
	WebSocketConnections int64     `json:"websocket_connections"`
	MemoryMB             int64     `json:"memory_mb"`
	HeapMB               int64     `json:"heap_mb"`
	Goroutines           int       `json:"goroutines"`
	GCCycles             uint32    `json:"gc_cycles"`
	Healthy              bool      `json:"healthy"`
}

// Stats counts deck swaps, requests and live reload connections
type Stats struct {
	start         time.Time
	decks         int64
	lastDeck      time.Time
	averageSlides float64
	requests      int64
	connections   int64
	now           func() time.Time
	mu            sync.RWMutex
}

// NewStats creates counters starting now
func NewStats() *Stats {
	return &Stats{start: time.Now(), now: time.Now}
}

// RecordDeck records a deck being swapped in
func (s *Stats) RecordDeck(slides int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decks++
	s.lastDeck = s.now()

	// Exponential moving average
	if s.decks == 1 {
		s.averageSlides = float64(slides)
	} else {
		alpha := 0.1
		s.averageSlides = s.averageSlides*(1-alpha) + float64(slides)*alpha
	}
}

// RecordHTTPRequest records an HTTP request
func (s *Stats) RecordHTTPRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
}

// RecordWebSocketConnection records a live reload client connecting
func (s *Stats) RecordWebSocketConnection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections++
}

// Uptime returns how long the counters have been running
func (s *Stats) Uptime() time.Duration {
	return s.now().Sub(s.start)
}

// Snapshot copies the counters and samples memory and goroutine usage
func (s *Stats) Snapshot() Snapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	s.mu.RLock()
	snap := Snapshot{
		StartTime:            s.start,
		Uptime:               s.Uptime().Round(time.Second).String(),
		DecksServed:          s.decks,
		LastDeckAt:           s.lastDeck,
		AverageSlides:        s.averageSlides,
		HTTPRequests:         s.requests,
		WebSocketConnections: s.connections,
	}
	s.mu.RUnlock()

	memory := safeUint64ToInt64(memStats.Alloc)
	snap.MemoryMB = memory / (1024 * 1024)
	snap.HeapMB = safeUint64ToInt64(memStats.HeapAlloc) / (1024 * 1024)
	snap.Goroutines = runtime.NumGoroutine()
	snap.GCCycles = memStats.NumGC
	snap.Healthy = memory < maxHealthyMemory && snap.Goroutines < maxHealthyGoroutines

	return snap
}

// safeUint64ToInt64 caps val at the max int64 value
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}
