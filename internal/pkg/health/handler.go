package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/logger"
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

// Checker reports the health of a single dependency
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a ping function to Checker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// DependencyInfo represents health info for a dependency
type DependencyInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the readiness response body
type Report struct {
	Status       string                    `json:"status"`
	Service      string                    `json:"service"`
	Timestamp    time.Time                 `json:"timestamp"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

// Service runs the registered dependency checks
type Service struct {
	serviceName string
	names       []string
	checkers    map[string]Checker
}

// NewService creates a health service for serviceName
func NewService(serviceName string) *Service {
	return &Service{
		serviceName: serviceName,
		checkers:    make(map[string]Checker),
	}
}

// AddChecker registers a checker for a dependency
func (s *Service) AddChecker(name string, checker Checker) {
	if _, exists := s.checkers[name]; !exists {
		s.names = append(s.names, name)
		sort.Strings(s.names)
	}
	s.checkers[name] = checker
}

// CheckAll runs every checker; the report is unhealthy if any fails
func (s *Service) CheckAll(ctx context.Context) Report {
	report := Report{
		Status:       "healthy",
		Service:      s.serviceName,
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyInfo, len(s.names)),
	}

	for _, name := range s.names {
		if err := s.checkers[name].CheckHealth(ctx); err != nil {
			logger.Warn("Health check failed",
				logger.String("dependency", name),
				logger.Err(err))
			report.Dependencies[name] = DependencyInfo{Status: "unhealthy", Error: err.Error()}
			report.Status = "unhealthy"
			continue
		}
		report.Dependencies[name] = DependencyInfo{Status: "healthy"}
	}

	return report
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

// RegisterHealthEndpoints registers liveness and readiness endpoints
func RegisterHealthEndpoints(e *echo.Echo, svc *Service) {
	e.GET("/ping", NewPingHandler(svc.serviceName))

	live := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	e.GET("/health", live)
	e.GET("/healthz", live)

	e.GET("/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		report := svc.CheckAll(ctx)
		if report.Status != "healthy" {
			return c.JSON(http.StatusServiceUnavailable, report)
		}
		return c.JSON(http.StatusOK, report)
	})
}
