// Package server runs the HTTP listener (and an optional gRPC listener)
// with signal-driven graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/campusgrid/campusgrid/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server holds the state for one deployable.
type Server struct {
	config *config.Config
	router *gin.Engine
	logger zerolog.Logger
	http   *http.Server

	grpcServer *grpc.Server
	grpcAddr   string

	shutdownHooks []func()
}

// New creates a server around a configured router.
func New(cfg *config.Config, router *gin.Engine, logger zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		router: router,
		logger: logger,
	}
}

// WithGRPC attaches a gRPC server to serve alongside HTTP.
func (s *Server) WithGRPC(grpcServer *grpc.Server, addr string) *Server {
	s.grpcServer = grpcServer
	s.grpcAddr = addr
	return s
}

// OnShutdown registers a cleanup hook to run after the listeners drain.
// Hooks run in registration order.
func (s *Server) OnShutdown(fn func()) *Server {
	s.shutdownHooks = append(s.shutdownHooks, fn)
	return s
}

// Run starts the listeners and blocks until a fatal error or an OS signal,
// then shuts down gracefully.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 2)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	if s.grpcServer != nil {
		lis, err := net.Listen("tcp", s.grpcAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", s.grpcAddr, err)
		}
		go func() {
			s.logger.Info().Str("addr", s.grpcAddr).Msg("gRPC server listening")
			serverErrors <- s.grpcServer.Serve(lis)
		}()
	}

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains the listeners and runs the registered cleanup hooks.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		}
	}

	if s.grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			s.grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			s.grpcServer.Stop()
		}
	}

	for _, hook := range s.shutdownHooks {
		hook()
	}

	s.logger.Info().Msg("Server shutdown complete")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
