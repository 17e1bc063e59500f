// Package server exposes the reviewer over HTTP.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nsxbet/abap-reviewer/pkg/reviewer"
)

// Config holds configuration for the HTTP server.
type Config struct {
	Addr            string
	Reviewer        *reviewer.Reviewer
	Logger          *slog.Logger
	MaxBodyBytes    int64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Concurrency     int
}

// Server serves the remediation endpoints.
type Server struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a server. Zero values in cfg fall back to defaults.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Reviewer == nil {
		cfg.Reviewer = reviewer.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 32 << 20
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &Server{cfg: cfg, logger: cfg.Logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(s.cfg.RequestTimeout),
	)

	h := &handlers{
		reviewer:     s.cfg.Reviewer,
		logger:       s.logger,
		maxBodyBytes: s.cfg.MaxBodyBytes,
		concurrency:  s.cfg.Concurrency,
	}
	r.Get("/health", h.health)
	r.Post("/remediate", h.remediate)
	r.Post("/remediate-array", h.remediateArray)
	return r
}

// Serve starts the server and blocks until ctx is cancelled or the listener
// fails.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		s.logger.Info("starting server", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server error")
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
