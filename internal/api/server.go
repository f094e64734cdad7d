package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/protocol"
)

type Server struct {
	httpServer *http.Server
	handler    *Handler
}

func New(cfg *config.ServerConfig, p *protocol.Protocol) *Server {
	h := NewHandler(p)
	return &Server{
		handler: h,
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      h.Router(),
			WriteTimeout: cfg.WriteTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Start blocks until the server is shut down
func (s *Server) Start() error {
	log.Info().Msgf("Starting API server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
