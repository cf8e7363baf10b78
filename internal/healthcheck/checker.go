package healthcheck

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
	"github.com/dmussaku/mongodb-etl-poc/internal/repository"
)

const defaultTimeout = 3 * time.Second

// Report is the readiness of the console's backend
type Report struct {
	Ready   bool              `json:"ready"`
	Backend string            `json:"backend"`
	Checks  map[string]string `json:"checks,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Checker probes the backend on demand. It never polls.
type Checker struct {
	repo    repository.ETLRepository
	timeout time.Duration
	logger  *slog.Logger
}

// NewChecker creates a new readiness checker
func NewChecker(repo repository.ETLRepository, timeout time.Duration, logger *slog.Logger) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Checker{
		repo:    repo,
		timeout: timeout,
		logger:  logger,
	}
}

// Check reports ready when the backend answers its detailed health endpoint
// and every dependency is healthy.
func (c *Checker) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	health, err := c.repo.FetchHealth(ctx)
	if err != nil {
		c.logger.Warn("backend not ready", slog.String("error", err.Error()))
		return Report{Ready: false, Backend: "unreachable", Error: err.Error()}
	}

	checks := make(map[string]string, len(model.DependencyServices))
	for _, service := range model.DependencyServices {
		checks[service] = health.Check(service)
	}

	return Report{
		Ready:   health.AllHealthy(),
		Backend: health.Status,
		Checks:  checks,
	}
}
