package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/logger"
)

// GracefulServer wraps an Echo server and the components that must be
// released after it stops accepting requests.
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	addr            string
	shutdownTimeout time.Duration
	cleanups        []cleanup
}

type cleanup struct {
	name string
	fn   func(context.Context) error
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, addr string, shutdownTimeout time.Duration) *GracefulServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
	}
}

// Register adds a cleanup function; cleanups run in reverse registration order
func (s *GracefulServer) Register(name string, fn func(context.Context) error) {
	s.cleanups = append(s.cleanups, cleanup{name: name, fn: fn})
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
func (s *GracefulServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", s.addr))
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal")
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("HTTP server failed", logger.Err(err))
			s.Shutdown()
			return err
		}
	}

	return s.Shutdown()
}

// Shutdown stops the HTTP server then runs every registered cleanup
func (s *GracefulServer) Shutdown() error {
	s.logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
		shutdownErr = err
	}

	for i := len(s.cleanups) - 1; i >= 0; i-- {
		c := s.cleanups[i]
		if err := c.fn(ctx); err != nil {
			s.logger.Error("Error during component shutdown",
				logger.String("component", c.name),
				logger.Err(err))
		}
	}

	s.logger.Info("Server shutdown completed")
	return shutdownErr
}
