// Package api provides the HTTP REST API for frontdesk.
//
// Endpoints:
//
//	POST /api/chat                 →  text chat turn
//	POST /api/chat/voice           →  multipart audio turn (transcribe, then chat)
//	POST /api/sessions/{id}/reset  →  clear one session's memory
//	GET  /health                   →  liveness probe
//	GET  /ready                    →  readiness probe
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (logging, recovery)
//   - health.go: Health check endpoints (/health, /ready)
//   - chat.go: Text and voice chat endpoints
//   - session.go: Session reset endpoint
//   - response.go: JSON response helpers
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmcneil/frontdesk/internal/chat"
	"github.com/dmcneil/frontdesk/internal/log"
	"github.com/dmcneil/frontdesk/internal/transcribe"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:3400"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	// Voice uploads can be a few MB, so this is generous.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Generation can take most of a minute on slow local backends.
	WriteTimeout = 90 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for frontdesk's REST API.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger

	// Handlers
	health  *HealthHandler
	chat    *ChatHandler
	session *SessionHandler
}

// Config contains all required parameters for the server.
type Config struct {
	Engine *chat.Engine
	Logger log.Logger

	// Transcriber is optional. When nil the voice endpoint responds
	// 503 instead of transcribing.
	Transcriber transcribe.Transcriber
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Engine == nil {
		return nil, errors.New("chat engine is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mux := http.NewServeMux()
	s := &Server{
		mux:     mux,
		logger:  cfg.Logger,
		health:  NewHealthHandler(cfg.Engine, cfg.Logger),
		chat:    NewChatHandler(cfg.Engine, cfg.Transcriber, cfg.Logger),
		session: NewSessionHandler(cfg.Engine, cfg.Logger),
	}

	// Register all routes
	s.health.RegisterRoutes(mux)
	s.chat.RegisterRoutes(mux)
	s.session.RegisterRoutes(mux)

	return s, nil
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux, recoveryMiddleware(s.logger), loggingMiddleware(s.logger))
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
