// Package http serves the deck preview with live reload.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/slidecast/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// Server implements ports.HTTPServer
type Server struct {
	server  *http.Server
	connMgr *ConnectionManager
	stats   *monitoring.Stats
	deck    *entities.Deck
	root    string
	config  *entities.ServerConfig
	logger  *HTTPLogger
	addr    string
	cancel  context.CancelFunc
	mu      sync.RWMutex
	running bool
}

// NewServer creates a preview server. root is the directory static files
// are served from, normally the outline's directory; empty disables them.
// config must not be nil.
func NewServer(config *entities.ServerConfig, root string, loggingConfig *entities.LoggingConfig) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}

	level := entities.LogLevelInfo
	verbose := false
	if loggingConfig != nil {
		level = loggingConfig.GetLevel()
		verbose = loggingConfig.Verbose
	}

	return &Server{
		connMgr: NewConnectionManager(),
		stats:   monitoring.NewStats(),
		root:    root,
		config:  config,
		logger:  NewHTTPLoggerWithLevel("server", verbose, level),
	}
}

// SetDeck swaps the deck served at /
func (s *Server) SetDeck(deck *entities.Deck) {
	s.mu.Lock()
	s.deck = deck
	s.mu.Unlock()

	if deck != nil && deck.Document != nil {
		s.stats.RecordDeck(deck.Document.SlideCount())
	}
}

// Stats returns the server counters
func (s *Server) Stats() *monitoring.Stats {
	return s.stats
}

// Deck returns the deck currently served
func (s *Server) Deck() *entities.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck
}

// Addr returns the address the server listens on once started
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Start binds the listener and serves in the background. Port 0 picks a
// free port; see Addr.
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("listening on %s:%d: %w", host, port, err)
	}

	managerCtx, cancel := context.WithCancel(ctx)
	go s.connMgr.Run(managerCtx)

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.config.GetReadTimeout(),
		WriteTimeout:      s.config.GetWriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}
	s.addr = ln.Addr().String()
	s.cancel = cancel
	s.running = true

	go func() {
		s.logger.Success("Preview server listening on http://%s", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop closes websocket clients and shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.CloseAll()
	s.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	s.running = false
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

// NotifyClients sends an update event to all connected clients
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()

	if !running {
		return errors.New("server not running")
	}

	s.connMgr.Broadcast(event)
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Handler returns the full handler chain: routes, middleware and CORS
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	// Traversal is judged by ResolvePath, not by path cleaning redirects
	router.SkipClean(true)

	router.HandleFunc("/", s.handleDeck).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/api/document", s.handleDocument).Methods(http.MethodGet)
	router.HandleFunc("/api/stats", s.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebSocket)
	router.PathPrefix("/").HandlerFunc(s.staticHandler).Methods(http.MethodGet, http.MethodHead)

	var handler http.Handler = router
	handler = securityHeadersMiddleware(handler)
	handler = createLoggingMiddleware(handler, s.logger)
	handler = createStatsMiddleware(handler, s.stats)
	handler = createRecoveryMiddleware(handler, s.logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return c.Handler(handler)
}

var _ ports.HTTPServer = (*Server)(nil)
