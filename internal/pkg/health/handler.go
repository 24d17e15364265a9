package health

import (
	"context"
	"errors"
	"net/http"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/nats"
)

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	BuildTime   string    `json:"build_time"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// DefaultBuildInfo contains default build information
var DefaultBuildInfo = BuildInfo{
	Version:   "development",
	GitCommit: "unknown",
	BuildTime: "unknown",
	GoVersion: runtime.Version(),
}

// NewPingHandler creates a handler for the ping endpoint
func NewPingHandler(serviceName string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	buildInfo := DefaultBuildInfo
	buildInfo.ServiceName = serviceName
	buildInfo.Hostname = hostname
	if version := os.Getenv("VERSION"); version != "" {
		buildInfo.Version = version
	}
	if gitCommit := os.Getenv("GIT_COMMIT"); gitCommit != "" {
		buildInfo.GitCommit = gitCommit
	}
	if buildTime := os.Getenv("BUILD_TIME"); buildTime != "" {
		buildInfo.BuildTime = buildTime
	}

	return func(c echo.Context) error {
		info := buildInfo
		info.ServerTime = time.Now()
		return c.JSON(http.StatusOK, info)
	}
}

// Checker checks one dependency
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// RedisChecker checks Redis connection health
func RedisChecker(client *database.RedisClient) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		return client.Ping(ctx)
	})
}

// PostgresChecker checks PostgreSQL connection health
func PostgresChecker(client *database.PostgresClient) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		return client.Ping(ctx)
	})
}

// NATSChecker checks NATS connection health
func NATSChecker(client *nats.Client) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		if !client.IsConnected() {
			return errors.New("NATS not connected")
		}
		return nil
	})
}

// Service manages health checks for multiple dependencies
type Service struct {
	checkers map[string]Checker
	logger   *logger.ZapLogger
}

// NewService creates a new health service
func NewService(zapLogger *logger.ZapLogger) *Service {
	return &Service{
		checkers: make(map[string]Checker),
		logger:   zapLogger,
	}
}

// AddChecker registers a health checker for a dependency
func (h *Service) AddChecker(name string, checker Checker) {
	h.checkers[name] = checker
}

// Response represents the health check response
type Response struct {
	Status       string                    `json:"status"`
	Timestamp    time.Time                 `json:"timestamp"`
	Service      string                    `json:"service"`
	Version      string                    `json:"version,omitempty"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

// DependencyInfo represents health info for a dependency
type DependencyInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// CheckAll performs health checks on all registered dependencies
func (h *Service) CheckAll(ctx context.Context) Response {
	response := Response{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyInfo, len(h.checkers)),
	}

	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checkers[name].CheckHealth(ctx); err != nil {
			h.logger.Warn("Health check failed",
				logger.String("dependency", name),
				logger.Err(err))
			response.Dependencies[name] = DependencyInfo{Status: "unhealthy", Error: err.Error()}
			response.Status = "unhealthy"
			continue
		}
		response.Dependencies[name] = DependencyInfo{Status: "healthy"}
	}

	return response
}

// RegisterHealthEndpoints registers ping, liveness and readiness endpoints
func RegisterHealthEndpoints(e *echo.Echo, serviceName, version string, svc *Service) {
	e.GET("/ping", NewPingHandler(serviceName))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   serviceName,
			"timestamp": time.Now(),
		})
	})

	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "alive",
			"service": serviceName,
		})
	})

	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		response := svc.CheckAll(ctx)
		response.Service = serviceName
		response.Version = version

		if response.Status == "unhealthy" {
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		return c.JSON(http.StatusOK, response)
	})
}
