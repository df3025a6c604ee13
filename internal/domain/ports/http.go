package ports

import (
	"context"
	"time"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// HTTPServer serves the deck preview
type HTTPServer interface {
	Start(ctx context.Context, port int, host string) error
	Stop(ctx context.Context) error
	// SetDeck swaps the deck served at the root
	SetDeck(deck *entities.Deck)
	NotifyClients(event UpdateEvent) error
	IsRunning() bool
}

// UpdateEvent is pushed to live-reload clients
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Update event types
const (
	EventTypeConnected = "connected"
	EventTypeReload    = "reload"
	EventTypeError     = "error"
	EventTypePing      = "ping"
)
