package screen

import (
	"context"
	"log/slog"

	"github.com/dmussaku/mongodb-etl-poc/internal/concurrent"
	"github.com/dmussaku/mongodb-etl-poc/internal/metrics"
	"github.com/dmussaku/mongodb-etl-poc/internal/model"
	"github.com/dmussaku/mongodb-etl-poc/internal/repository"
	"github.com/dmussaku/mongodb-etl-poc/internal/viewmodel"
)

var dashboardFetches = []string{"health", "jobs", "connections"}

// Dashboard aggregates health, job and connection counts
type Dashboard struct {
	lc     *lifecycle[viewmodel.DashboardView]
	repo   repository.ETLRepository
	logger *slog.Logger
}

// NewDashboard creates a dashboard in the loading phase. notify is called
// after every state change.
func NewDashboard(repo repository.ETLRepository, logger *slog.Logger, notify func()) *Dashboard {
	return &Dashboard{
		lc:     newLifecycle[viewmodel.DashboardView](notify),
		repo:   repo,
		logger: logger.With(slog.String("screen", NameDashboard)),
	}
}

func (d *Dashboard) Name() string { return NameDashboard }

// Activate fetches the three sources concurrently and commits once all of
// them have settled. Any failure fails the whole screen.
func (d *Dashboard) Activate(ctx context.Context) {
	token, ctx, cancel := d.lc.begin(ctx)
	defer cancel()

	results := concurrent.ParallelExecute(ctx, []concurrent.Task[any]{
		func(ctx context.Context) (any, error) {
			return d.repo.FetchHealth(ctx)
		},
		func(ctx context.Context) (any, error) {
			return d.repo.FetchJobs(ctx, 0, repository.DefaultJobsLimit)
		},
		func(ctx context.Context) (any, error) {
			return d.repo.FetchConnections(ctx, 0, repository.DefaultConnectionsLimit)
		},
	})

	failed := concurrent.HasErrors(results)
	applied := d.lc.commit(token, func(state *model.ViewState[viewmodel.DashboardView]) {
		if failed {
			*state = model.Failed[viewmodel.DashboardView](viewmodel.MsgDashboardFailed)
			return
		}
		*state = model.Ready(viewmodel.Dashboard(
			results[0].Value.(*model.HealthStatus),
			results[1].Value.(*model.JobList),
			results[2].Value.(*model.ConnectionList),
		))
	})
	if !applied {
		d.logger.Debug("discarding stale dashboard responses")
		return
	}

	for _, result := range concurrent.Failures(results) {
		d.logger.Error("failed to load dashboard data",
			slog.String("fetch", dashboardFetches[result.Index]),
			slog.String("error", result.Error.Error()),
		)
	}
	recordActivation(NameDashboard, failed)
}

// Deactivate discards any in-flight responses
func (d *Dashboard) Deactivate() {
	d.lc.end()
}

// State returns the current view-state
func (d *Dashboard) State() model.ViewState[viewmodel.DashboardView] {
	return d.lc.snapshot()
}

func recordActivation(screen string, failed bool) {
	phase := string(model.PhaseReady)
	if failed {
		phase = string(model.PhaseError)
	}
	metrics.ScreenActivationsTotal.WithLabelValues(screen, phase).Inc()
}
