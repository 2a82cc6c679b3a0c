// Package server provides the HTTP server for the framelift backend.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/secondary4432-cyber/framelift-ai/internal/config"
	"github.com/secondary4432-cyber/framelift-ai/internal/logger"
	"github.com/secondary4432-cyber/framelift-ai/internal/server/handler"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second
)

// Server wires the three handlers onto a single HTTP listener.
type Server struct {
	config  *config.Config
	handler *handler.Handler
}

// NewServer creates a new server instance with the provided configuration
// and handlers.
func NewServer(cfg *config.Config, h *handler.Handler) *Server {
	if cfg == nil {
		logger.Fatal("Config cannot be nil")
	}
	if h == nil {
		logger.Fatal("Handler cannot be nil")
	}

	return &Server{
		config:  cfg,
		handler: h,
	}
}

// Routes builds the route table. Exposed so tests can drive the exact mux
// the listener serves.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.root)
	mux.HandleFunc("/auth", s.handler.HandleAuthStart)
	mux.HandleFunc("/on_auth", s.handler.HandleAuthCallback)
	mux.HandleFunc("/upload", s.handler.HandleUpload)
	return mux
}

// root keeps the health response on "/" exactly, rather than on the ServeMux
// catch-all subtree.
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.handler.HandleHealth(w, r)
}

// Start runs the HTTP server until the context is cancelled, then shuts it
// down gracefully. It returns an error if the server fails to start or
// encounters an error during operation.
func (s *Server) Start(ctx context.Context) error {
	if missing := s.config.MissingCredentials(); len(missing) > 0 {
		logger.Warn("TikTok credentials incomplete, token exchanges will fail",
			zap.String("missing", strings.Join(missing, ", ")),
		)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}

	// Channel for server errors
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server",
			zap.String("address", addr),
			zap.String("frontend_url", s.config.FrontendURL),
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server",
			zap.Duration("timeout", shutdownTimeout),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

// Module provides the server dependencies
var Module = fx.Module("server",
	fx.Provide(
		NewServer,
	),
)
