// Package api implements the tagcloud HTTP API.
//
// One-shot requests run through [pipeline.Runner] and share its cache.
// Interactive sessions live in a [session.Store]; each session is placed
// into under its own mutex, and the server keeps the session's layouter in
// memory so that a placement does not replay the whole history.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/session"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes limits request bodies.
	DefaultMaxBodyBytes = 4 << 20

	cleanupInterval = 10 * time.Minute
	shutdownTimeout = 5 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner     *pipeline.Runner
	store      session.Store
	logger     *log.Logger
	sessionTTL time.Duration
	maxBody    int64

	mu   sync.Mutex
	live map[string]*liveSession
}

// liveSession serializes placements into one session and caches its
// rebuilt layouter.
type liveSession struct {
	mu sync.Mutex
	l  *layouter.Layouter
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSessionTTL sets how long idle sessions are kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) { s.sessionTTL = ttl }
}

// WithMaxBodyBytes limits the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// New creates a server. A nil runner gets an uncached runner and a nil
// store an in-memory store.
func New(runner *pipeline.Runner, store session.Store, opts ...Option) *Server {
	s := &Server{
		store:      store,
		runner:     runner,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
		sessionTTL: session.DefaultTTL,
		maxBody:    DefaultMaxBodyBytes,
		live:       make(map[string]*liveSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.store == nil {
		s.store = session.NewMemoryStore()
	}
	return s
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layouts", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/rectangles", s.handlePlace)
				r.Get("/render", s.handleRenderSession)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, errNotFound("route %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept periodically while serving.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases the runner and the session store.
func (s *Server) Close() error {
	return errors.Join(s.runner.Close(), s.store.Close())
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
			if n := s.prune(ctx); n > 0 {
				s.logger.Debug("released expired sessions", "count", n)
			}
		}
	}
}

// session returns the live entry for id, creating it if needed.
func (s *Server) session(id string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.live[id]
	if !ok {
		ls = &liveSession{}
		s.live[id] = ls
	}
	return ls
}

func (s *Server) forget(id string) {
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
}
