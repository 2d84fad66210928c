package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/trainerapi/internal/bootstrap"
	"github.com/yigit/trainerapi/internal/config"
)

const (
	readTimeout   = 10 * time.Second
	writeTimeout  = 10 * time.Second
	idleTimeout   = 120 * time.Second
	shutdownGrace = 10 * time.Second
)

// Server owns the HTTP listener and the storage behind it.
type Server struct {
	config  *config.Config
	router  *gin.Engine
	storage *bootstrap.Storage
	logger  zerolog.Logger
	http    *http.Server
}

// NewServer loads the configuration and wires the whole application.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	storage, err := bootstrap.SetupStorage(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	deps := bootstrap.BuildDependencies(storage, lgr)
	bootstrap.SeedDefaultData(cfg, deps, lgr)

	return New(cfg, bootstrap.SetupRouter(cfg, deps, lgr), storage, lgr), nil
}

// New creates a server around an already built router and storage.
func New(cfg *config.Config, router *gin.Engine, storage *bootstrap.Storage, lgr zerolog.Logger) *Server {
	return &Server{
		config:  cfg,
		router:  router,
		storage: storage,
		logger:  lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens until ctx is done or the listener fails, then shuts down.
func (s *Server) Serve(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Str("driver", s.storage.Driver).Msg("HTTP server listening")
		serveErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			s.storage.Close()
			return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains in-flight requests, then releases storage.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownGrace)
	defer cancel()

	var err error
	if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
		s.logger.Error().Err(shutdownErr).Msg("HTTP server shutdown error")
		err = fmt.Errorf("http shutdown: %w", shutdownErr)
	}

	s.storage.Close()
	s.logger.Info().Msg("Server stopped")
	return err
}
