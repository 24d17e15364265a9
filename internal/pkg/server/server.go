package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/logger"
)

// GracefulServer wraps Echo server with graceful shutdown capabilities
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	port            int
	shutdownTimeout time.Duration
	components      *ShutdownManager
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, port int, shutdownTimeout time.Duration) *GracefulServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		port:            port,
		shutdownTimeout: shutdownTimeout,
		components:      NewShutdownManager(zapLogger),
	}
}

// OnShutdown registers a cleanup run after the HTTP server has stopped,
// in registration order
func (s *GracefulServer) OnShutdown(name string, fn func(context.Context) error) {
	s.components.Register(name, fn)
}

// Run serves until ctx is cancelled (typically by SIGINT/SIGTERM through
// signal.NotifyContext), then shuts the server and components down.
func (s *GracefulServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", s.port)
		s.logger.Info("Starting HTTP server", logger.String("address", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			s.logger.Error("Failed to start server", logger.Err(err))
			return err
		}
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal")
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server and registered components
func (s *GracefulServer) Shutdown() error {
	s.logger.Info("Shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.echo.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
	}

	s.components.Shutdown(ctx)
	s.logger.Info("Server shutdown completed")
	return err
}

type component struct {
	name string
	fn   func(context.Context) error
}

// ShutdownManager runs registered cleanup functions in order
type ShutdownManager struct {
	logger     *logger.ZapLogger
	components []component
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	return &ShutdownManager{logger: zapLogger}
}

// Register adds a cleanup function to be called during shutdown
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	sm.components = append(sm.components, component{name: name, fn: fn})
}

// Shutdown executes all registered cleanup functions; one failing does not stop the rest
func (sm *ShutdownManager) Shutdown(ctx context.Context) {
	for _, c := range sm.components {
		if err := c.fn(ctx); err != nil {
			sm.logger.Error("Error during component shutdown",
				logger.String("component", c.name),
				logger.Err(err))
		}
	}
}
