package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/maksimkurb/duetctl/src/internal/domain"
	"github.com/maksimkurb/duetctl/src/internal/log"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new API server for the printers in deps.
//
// The write timeout leaves room for a full printer read timeout plus detection
// on first use.
func NewServer(deps *domain.AppDependencies, bindAddr string) *Server {
	connectTimeout, readTimeout := deps.Config().Timeouts()

	return &Server{
		httpServer: &http.Server{
			Addr:              bindAddr,
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: 15 * time.Second,
			WriteTimeout:      3*(connectTimeout+readTimeout) + 15*time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start starts the API server and blocks until it is stopped.
func (s *Server) Start() error {
	log.Infof("[API] Starting server on %s", s.httpServer.Addr)
	log.Infof("[API] Example: curl http://%s/api/v1/printers", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop gracefully stops the API server
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("[API] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
