package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

func TestConnectionManager(t *testing.T) {
	t.Run("broadcast reaches every connection", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go cm.Run(ctx)

		a := &Connection{ID: "a", Send: make(chan ports.UpdateEvent, 1)}
		b := &Connection{ID: "b", Send: make(chan ports.UpdateEvent, 1)}
		require.True(t, cm.RegisterConnection(a))
		require.True(t, cm.RegisterConnection(b))

		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})

		for _, conn := range []*Connection{a, b} {
			select {
			case event := <-conn.Send:
				assert.Equal(t, ports.EventTypeReload, event.Type)
			case <-time.After(time.Second):
				t.Fatalf("connection %s got no event", conn.ID)
			}
		}
		assert.Equal(t, 2, cm.Count())
	})

	t.Run("unregister closes the channel", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go cm.Run(ctx)

		conn := &Connection{ID: "a", Send: make(chan ports.UpdateEvent, 1)}
		require.True(t, cm.RegisterConnection(conn))
		cm.Unregister("a")
		cm.Unregister("a")

		_, ok := <-conn.Send
		assert.False(t, ok)
		assert.Equal(t, 0, cm.Count())
	})

	t.Run("slow client is dropped", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go cm.Run(ctx)

		slow := &Connection{ID: "slow", Send: make(chan ports.UpdateEvent)}
		require.True(t, cm.RegisterConnection(slow))

		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})

		assert.Eventually(t, func() bool { return cm.Count() == 0 }, time.Second, 5*time.Millisecond)
		_, ok := <-slow.Send
		assert.False(t, ok)
	})

	t.Run("stopped manager refuses registrations", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		go func() {
			cm.Run(ctx)
			close(stopped)
		}()

		conn := &Connection{ID: "a", Send: make(chan ports.UpdateEvent, 1)}
		require.True(t, cm.RegisterConnection(conn))

		cancel()
		<-stopped

		_, ok := <-conn.Send
		assert.False(t, ok)
		assert.False(t, cm.RegisterConnection(&Connection{ID: "b", Send: make(chan ports.UpdateEvent)}))

		// neither blocks after shutdown
		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})
		cm.Unregister("a")
	})
}
