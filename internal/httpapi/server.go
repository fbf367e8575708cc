// Package httpapi exposes the scripture client and the sync channel over
// HTTP, so a browser tab can act as one more display surface.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"bible-tui/internal/api"
	"bible-tui/internal/broadcast"
)

// DefaultHeartbeat is how often idle streams get a heartbeat event.
const DefaultHeartbeat = 30 * time.Second

// Server routes the relay endpoints.
type Server struct {
	router    *chi.Mux
	client    *api.Client
	upstream  broadcast.Channel
	hub       *broadcast.Memory
	logger    *slog.Logger
	heartbeat time.Duration
	origins   []string

	mu      sync.Mutex
	last    broadcast.Snapshot
	clients map[string]time.Time
	detach  func()
	done    chan struct{}
	closed  bool
}

// Option configures a Server.
type Option func(*Server)

// WithHeartbeat overrides DefaultHeartbeat.
func WithHeartbeat(d time.Duration) Option {
	return func(s *Server) { s.heartbeat = d }
}

// WithAllowedOrigins restricts CORS. The default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// NewServer builds the router. Call Start before serving stream requests.
func NewServer(client *api.Client, upstream broadcast.Channel, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:    chi.NewRouter(),
		client:    client,
		upstream:  upstream,
		hub:       broadcast.NewMemory(logger),
		logger:    logger,
		heartbeat: DefaultHeartbeat,
		origins:   []string{"*"},
		clients:   make(map[string]time.Time),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Get("/versions", s.handleVersions)
			r.Get("/books", s.handleBooks)
			r.Get("/chapters/{version}/{bookID}/{chapter}", s.handleChapter)
			r.Get("/resolve", s.handleResolve)
			r.Get("/search", s.handleSearch)
			r.Get("/bibles", s.handleBibles)
			r.Post("/sync/ready", s.handleReady)
		})
		r.Get("/sync/stream", s.handleStream)
	})
}

// Start subscribes once to the upstream channel and fans messages out to
// stream clients through an in-process hub.
func (s *Server) Start(ctx context.Context) error {
	detach, err := s.upstream.Subscribe(ctx, func(m broadcast.Message) {
		if m.Ready {
			return
		}
		s.mu.Lock()
		s.last = s.last.Merge(m.Snapshot)
		s.mu.Unlock()
		if err := s.hub.Publish(ctx, m.Snapshot); err != nil {
			s.logger.Debug("relay hub publish failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.detach = detach
	s.mu.Unlock()
	s.logger.Info("sync relay started", "backend", s.upstream.Backend())
	return nil
}

// Shutdown detaches from the upstream channel and ends every stream.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	detach := s.detach
	s.detach = nil
	s.mu.Unlock()
	if detach != nil {
		detach()
	}
	return s.hub.Close()
}

// Clients returns the number of connected stream clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) lastSnapshot() broadcast.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Merge(broadcast.Snapshot{})
}

// relay is the channel each stream Receiver sees: it listens on the hub and
// sends ready requests upstream, where the controller is.
type relay struct {
	*broadcast.Memory
	upstream broadcast.Channel
}

func (r relay) RequestReady(ctx context.Context) error {
	return r.upstream.RequestReady(ctx)
}

func (r relay) Backend() broadcast.Backend { return r.upstream.Backend() }
