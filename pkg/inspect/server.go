package inspect

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/domkit"
	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/dom"
)

// Server exposes a Kit's document and engine over HTTP.
type Server struct {
	kit *domkit.Kit

	// ui serializes every touch of the document and engine.
	ui        sync.Mutex
	nextID    int
	listeners map[int]*binding
	pending   []Invocation

	stream   *stream
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

type binding struct {
	id       int
	node     *dom.Element
	query    string
	event    string
	selector string
	handler  *delegate.Callable
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGatherer sets where /metrics reads from. Defaults to
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithCheckOrigin sets the WebSocket origin check. The default accepts
// every origin.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(s *Server) {
		s.stream.upgrader.CheckOrigin = fn
	}
}

// New creates a Server for kit.
func New(kit *domkit.Kit, opts ...Option) *Server {
	s := &Server{
		kit:       kit,
		listeners: make(map[int]*binding),
		stream:    newStream(func(*http.Request) bool { return true }),
		gatherer:  prometheus.DefaultGatherer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/document", s.handleDocument)
	r.Route("/listeners", func(r chi.Router) {
		r.Get("/", s.handleListListeners)
		r.Post("/", s.handleAddListener)
		r.Delete("/", s.handleClearListeners)
		r.Delete("/{id}", s.handleRemoveListener)
	})
	r.Post("/dispatch", s.handleDispatch)
	r.Get("/ws", s.stream.handle)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("inspect server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.stream.close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("inspect server stopped")
		return nil
	}
}

// Clients returns the number of connected WebSocket clients.
func (s *Server) Clients() int {
	return s.stream.count()
}
