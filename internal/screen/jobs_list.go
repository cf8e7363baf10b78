package screen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmussaku/mongodb-etl-poc/internal/metrics"
	"github.com/dmussaku/mongodb-etl-poc/internal/model"
	"github.com/dmussaku/mongodb-etl-poc/internal/repository"
	"github.com/dmussaku/mongodb-etl-poc/internal/viewmodel"
)

// JobsList shows the first page of jobs and triggers runs from the list
type JobsList struct {
	lc     *lifecycle[viewmodel.JobsListView]
	repo   repository.ETLRepository
	logger *slog.Logger
}

func NewJobsList(repo repository.ETLRepository, logger *slog.Logger, notify func()) *JobsList {
	return &JobsList{
		lc:     newLifecycle[viewmodel.JobsListView](notify),
		repo:   repo,
		logger: logger.With(slog.String("screen", NameJobsList)),
	}
}

func (s *JobsList) Name() string { return NameJobsList }

func (s *JobsList) Activate(ctx context.Context) {
	token, ctx, cancel := s.lc.begin(ctx)
	defer cancel()

	list, err := s.repo.FetchJobs(ctx, 0, repository.DefaultJobsLimit)
	applied := s.lc.commit(token, func(state *model.ViewState[viewmodel.JobsListView]) {
		if err != nil {
			*state = model.Failed[viewmodel.JobsListView](viewmodel.MsgJobsFailed)
			return
		}
		*state = model.Ready(viewmodel.JobsList(list))
	})
	if !applied {
		s.logger.Debug("discarding stale jobs response")
		return
	}

	if err != nil {
		s.logger.Error("failed to load jobs", slog.String("error", err.Error()))
	}
	recordActivation(NameJobsList, err != nil)
}

func (s *JobsList) Deactivate() {
	s.lc.end()
}

func (s *JobsList) State() model.ViewState[viewmodel.JobsListView] {
	return s.lc.snapshot()
}

// ViewJob returns the route of a job's detail screen
func (s *JobsList) ViewJob(id int64) string {
	return fmt.Sprintf("/jobs/%d", id)
}

// TriggerRun requests an ad-hoc run for a listed job. The list itself is
// never changed or re-fetched.
func (s *JobsList) TriggerRun(ctx context.Context, id int64) error {
	state := s.lc.snapshot()
	if !state.IsReady() {
		return ErrJobUnavailable
	}

	var row *viewmodel.JobRow
	for i := range state.Data.Jobs {
		if state.Data.Jobs[i].ID == id {
			row = &state.Data.Jobs[i]
			break
		}
	}
	if row == nil {
		return ErrJobUnavailable
	}
	if !row.CanRun {
		metrics.JobTriggersTotal.WithLabelValues("rejected").Inc()
		return ErrJobInactive
	}

	return triggerRun(ctx, s.repo, s.logger, id)
}

func triggerRun(ctx context.Context, repo repository.ETLRepository, logger *slog.Logger, id int64) error {
	if err := repo.TriggerJobRun(ctx, id); err != nil {
		metrics.JobTriggersTotal.WithLabelValues("failed").Inc()
		logger.Error("failed to trigger job run",
			slog.Int64("job_id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to trigger job %d: %w", id, err)
	}

	metrics.JobTriggersTotal.WithLabelValues("accepted").Inc()
	logger.Info("job run triggered", slog.Int64("job_id", id))
	return nil
}
