package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"worktrack/internal/config"
	"worktrack/internal/repository/sqlite"
	"worktrack/internal/services"
)

// Server is the HTTP surface over the window lifecycle services.
type Server struct {
	repo        sqlite.Repository
	windows     services.WindowService
	screenshots services.ScreenshotService
	sweeper     services.Sweeper
	analytics   services.AnalyticsService
	cronSecret  string
	mux         *http.ServeMux
}

// New creates a new Server wired to the given services.
func New(repo sqlite.Repository, windows services.WindowService, screenshots services.ScreenshotService, sweeper services.Sweeper, analytics services.AnalyticsService, cronSecret string) *Server {
	s := &Server{
		repo:        repo,
		windows:     windows,
		screenshots: screenshots,
		sweeper:     sweeper,
		analytics:   analytics,
		cronSecret:  cronSecret,
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Session endpoints: employees only, API tokens forbidden.
	s.mux.HandleFunc("POST /v1/window/start", s.requireEmployee(s.handleStart))
	s.mux.HandleFunc("PUT /v1/window/stop/{windowId}", s.requireEmployee(s.handleStop))
	s.mux.HandleFunc("GET /v1/window/current", s.requireEmployee(s.handleCurrent))
	s.mux.HandleFunc("PUT /v1/window/heartbeat/{windowId}", s.requireEmployee(s.handleHeartbeat))
	s.mux.HandleFunc("POST /v1/screenshot/upload", s.requireEmployee(s.handleScreenshotUpload))

	// Analytics reads: employee or API token.
	s.mux.HandleFunc("GET /v1/analytics/window", s.withAuth(s.handleAnalyticsWindow))
	s.mux.HandleFunc("GET /v1/analytics/project-time", s.withAuth(s.handleAnalyticsProjectTime))

	// Cron trigger: static shared secret, not employee auth.
	s.mux.HandleFunc("GET /v1/cron/log-inactivity", s.handleCronSweep)

	return s
}

// ServeHTTP delegates to the internal mux, implementing http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	slog.Debug("request handled", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
