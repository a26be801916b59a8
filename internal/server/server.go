package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Anshumanformal/apirelay/internal/apiclient"
	"github.com/Anshumanformal/apirelay/internal/logger"
)

// Server represents the relay server with its dependencies
type Server struct {
	api     *apiclient.Client
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates a new server instance around the given API client.
// A nil client is tolerated; the trigger route then reports an error
// instead of forwarding.
func NewServer(api *apiclient.Client) *Server {
	s := &Server{
		api: api,
		mux: http.NewServeMux(),
	}
	s.setupRoutes()
	s.handler = requestIDMiddleware(loggingMiddleware(recoverMiddleware(s.mux)))

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/", s.healthHandler)
	s.mux.HandleFunc("/start", s.startHandler)
}

// ServeHTTP implements http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Start launches the relay server on the given address
func (s *Server) Start(addr string) error {
	if s.api == nil {
		logger.Get().Warn().Msg("The server will run but the trigger route will fail without a configured API client")
	}

	logger.Get().Info().Msgf("Starting relay server on %s", addr)
	return http.ListenAndServe(addr, s)
}

// StartWithContext launches the relay server and shuts it down
// gracefully once the context is cancelled.
func (s *Server) StartWithContext(ctx context.Context, addr string) error {
	if s.api == nil {
		logger.Get().Warn().Msg("The server will run but the trigger route will fail without a configured API client")
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: s,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Get().Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	logger.Get().Info().Msgf("Starting relay server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
