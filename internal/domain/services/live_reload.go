package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// LiveReloadService rebuilds the served deck when its source changes and
// tells connected browsers to reload
type LiveReloadService struct {
	watcher ports.FileWatcher
	server  ports.HTTPServer
	builder ports.DeckBuilder
	logger  *slog.Logger

	mu          sync.Mutex
	watching    bool
	watchCancel context.CancelFunc
	done        chan struct{}
	sourcePath  string
}

// NewLiveReloadService creates a new live reload service
func NewLiveReloadService(
	watcher ports.FileWatcher,
	server ports.HTTPServer,
	builder ports.DeckBuilder,
	logger *slog.Logger,
) *LiveReloadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LiveReloadService{
		watcher: watcher,
		server:  server,
		builder: builder,
		logger:  logger.With("service", "live_reload"),
	}
}

// Start watches sourcePath until ctx ends or Stop is called
func (s *LiveReloadService) Start(ctx context.Context, sourcePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watching {
		return errors.New("already watching")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	events, err := s.watcher.Watch(watchCtx, sourcePath)
	if err != nil {
		cancel()
		return fmt.Errorf("starting watcher: %w", err)
	}

	s.watching = true
	s.watchCancel = cancel
	s.sourcePath = sourcePath
	s.done = make(chan struct{})

	go s.handleEvents(watchCtx, events, s.done)

	s.logger.Info("Live reload enabled", slog.String("path", sourcePath))
	return nil
}

// Stop stops watching and waits for the event loop to exit
func (s *LiveReloadService) Stop() error {
	s.mu.Lock()
	if !s.watching {
		s.mu.Unlock()
		return nil
	}
	s.watching = false
	cancel, done := s.watchCancel, s.done
	s.watchCancel = nil
	s.mu.Unlock()

	cancel()
	err := s.watcher.Stop()
	<-done

	return err
}

// IsWatching returns whether the service is currently watching
func (s *LiveReloadService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// Rebuild builds the deck, swaps it into the server and broadcasts a
// reload. A failed build keeps the previous deck and broadcasts an error.
func (s *LiveReloadService) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	path := s.sourcePath
	s.mu.Unlock()

	if path == "" {
		return errors.New("no source path set")
	}

	start := time.Now()
	deck, err := s.builder.BuildDeck(ctx, path, true)
	if err != nil {
		s.notify(ports.UpdateEvent{
			Type:      ports.EventTypeError,
			Timestamp: time.Now(),
			Data:      map[string]string{"message": err.Error()},
		})
		return fmt.Errorf("rebuilding deck: %w", err)
	}

	s.server.SetDeck(deck)
	s.notify(ports.UpdateEvent{
		Type:      ports.EventTypeReload,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"file":   path,
			"slides": deck.Document.SlideCount(),
		},
	})

	s.logger.Info("Deck reloaded",
		slog.String("path", path),
		slog.Int("slides", deck.Document.SlideCount()),
		slog.Duration("took", time.Since(start)),
	)

	return nil
}

func (s *LiveReloadService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			s.logger.Debug("File change detected",
				slog.String("path", event.Path),
				slog.String("type", event.Type.String()),
			)

			if event.Type == ports.Deleted {
				s.logger.Warn("Source file removed, keeping the current deck", slog.String("path", event.Path))
				s.notify(ports.UpdateEvent{
					Type:      ports.EventTypeError,
					Timestamp: event.Timestamp,
					Data:      map[string]string{"message": "source file removed: " + event.Path},
				})
				continue
			}

			if err := s.Rebuild(ctx); err != nil {
				s.logger.Error("Failed to rebuild deck",
					slog.String("path", event.Path),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

func (s *LiveReloadService) notify(event ports.UpdateEvent) {
	if err := s.server.NotifyClients(event); err != nil {
		s.logger.Warn("Failed to notify live reload clients",
			slog.String("event_type", event.Type),
			slog.String("error", err.Error()),
		)
	}
}
