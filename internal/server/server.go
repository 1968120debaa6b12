// Package server exposes one placement store over an HTTP JSON API.
//
// All requests share the same store, so every client sees the same
// workspace. Errors are answered as {"code": ..., "message": ...} with the
// HTTP status derived from the error code.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/protoboard/protoboard/internal/metrics"
	"github.com/protoboard/protoboard/pkg/importer"
	"github.com/protoboard/protoboard/pkg/workspace"
)

const shutdownTimeout = 10 * time.Second

// Server serves the workspace API.
type Server struct {
	store    *workspace.Store
	importer *importer.Importer
	logger   *log.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	origins  []string

	closing   chan struct{}
	closeOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records request metrics in m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithCORSOrigins sets the origins allowed to call the API.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// New creates a server over store. im handles POST /api/workspace/import.
func New(store *workspace.Store, im *importer.Importer, opts ...Option) *Server {
	s := &Server{
		store:    store,
		importer: im,
		logger:   log.New(io.Discard),
		gatherer: prometheus.DefaultGatherer,
		origins:  []string{"*"},
		closing:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/boards", s.handleListBoards)
		r.Get("/boards/{id}", s.handleGetBoard)
		r.Get("/boards/{id}/footprint.svg", s.handleFootprint)
		r.Get("/modules", s.handleListModules)

		r.Route("/workspace", func(r chi.Router) {
			r.Get("/", s.handleGetWorkspace)
			r.Put("/board", s.handleSetBoard)
			r.Put("/view", s.handleSetView)
			r.Put("/split", s.handleSetSplit)
			r.Post("/reset", s.handleReset)
			r.Get("/stats", s.handleStats)
			r.Get("/events", s.handleEvents)

			r.Post("/modules", s.handleAddModule)
			r.Delete("/modules/{instanceID}", s.handleRemoveModule)
			r.Patch("/modules/{instanceID}/transform", s.handleTransform)
			r.Post("/import", s.handleImport)

			r.Get("/schematic.svg", s.handleSchematicSVG)
			r.Get("/schematic.dot", s.handleSchematicDOT)
			r.Get("/scene.json", s.handleScene)
		})
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
}

// observe logs each request and records it in the metrics, labelled by
// route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveRequest(r.Method, route, status, elapsed)
		}
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status,
			"duration", elapsed.Round(time.Microsecond), "request_id", middleware.GetReqID(r.Context()))
	})
}

// closeStreams ends open event streams, which Shutdown does not wait out.
func (s *Server) closeStreams() {
	s.closeOnce.Do(func() { close(s.closing) })
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeStreams)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
