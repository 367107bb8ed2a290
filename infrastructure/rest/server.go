// Package rest exposes the assistant over HTTP/JSON.
package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"
	"toni/contract"
	"toni/observability"
	"toni/repositories"
	"toni/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// processMonitor is the part of observability.MonitoringManager read by /health.
type processMonitor interface {
	Latest() observability.ProcessStats
	Uptime() time.Duration
}

// Deps are the collaborators of the HTTP surface. Store is nil when
// persistence is disabled; Monitor may be nil.
type Deps struct {
	Secretary services.ISecretaryService
	Expert    services.IExpertService
	Store     repositories.IStore
	Publisher contract.Publisher
	Monitor   processMonitor
}

type Server struct {
	log          *slog.Logger
	deps         Deps
	maxBodyBytes int64
	now          func() time.Time
	startedAt    time.Time
}

func NewServer(log *slog.Logger, deps Deps, maxBodyBytes int64) *Server {
	s := &Server{
		log:          log,
		deps:         deps,
		maxBodyBytes: maxBodyBytes,
		now:          func() time.Time { return time.Now().UTC() },
	}
	s.startedAt = s.now()
	return s
}

// Handler returns the full middleware chain around the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/secretary", s.handleSecretary)
	mux.HandleFunc("POST /api/expert", s.handleExpert)

	mux.HandleFunc("GET /api/sessions", s.handleRecentSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)

	mux.HandleFunc("POST /api/devices", s.handleRegisterDevice)
	mux.HandleFunc("GET /api/devices", s.handleListDevices)
	mux.HandleFunc("GET /api/devices/{ip}", s.handleGetDevice)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return corsMiddleware(s.loggingMiddleware(metricsMiddleware(s.bodyLimitMiddleware(mux))))
}

// Start serves on addr until ctx ends, then drains in-flight requests for
// at most shutdownTimeout.
func (s *Server) Start(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("Shutting down HTTP server", "timeout", shutdownTimeout)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
