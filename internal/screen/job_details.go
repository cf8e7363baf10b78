package screen

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
	"github.com/dmussaku/mongodb-etl-poc/internal/repository"
	"github.com/dmussaku/mongodb-etl-poc/internal/viewmodel"
)

// JobDetails shows one job's configuration and run history
type JobDetails struct {
	lc     *lifecycle[viewmodel.JobDetailsView]
	repo   repository.ETLRepository
	logger *slog.Logger
}

func NewJobDetails(repo repository.ETLRepository, logger *slog.Logger, notify func()) *JobDetails {
	return &JobDetails{
		lc:     newLifecycle[viewmodel.JobDetailsView](notify),
		repo:   repo,
		logger: logger.With(slog.String("screen", NameJobDetails)),
	}
}

func (s *JobDetails) Name() string { return NameJobDetails }

// Activate loads job jobID and its runs concurrently. A failed job fetch
// fails the screen; a failed runs fetch only degrades the history. Responses
// of any earlier activation are discarded.
func (s *JobDetails) Activate(ctx context.Context, jobID int64) {
	token, ctx, cancel := s.lc.begin(ctx)
	defer cancel()

	var (
		job     *model.ETLJob
		runs    *model.RunList
		runsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = s.repo.FetchJob(gctx, jobID)
		return err
	})
	g.Go(func() error {
		runs, runsErr = s.repo.FetchJobRuns(gctx, jobID, 0, repository.DefaultRunsLimit)
		return nil
	})
	jobErr := g.Wait()

	applied := s.lc.commit(token, func(state *model.ViewState[viewmodel.JobDetailsView]) {
		switch {
		case jobErr != nil:
			*state = model.Failed[viewmodel.JobDetailsView](viewmodel.MsgJobDetailsFailed)
		case runsErr != nil:
			*state = model.Ready(viewmodel.JobDetails(job, nil, true))
		default:
			*state = model.Ready(viewmodel.JobDetails(job, runs.Runs, false))
		}
	})
	if !applied {
		s.logger.Debug("discarding stale job details responses", slog.Int64("job_id", jobID))
		return
	}

	switch {
	case jobErr != nil:
		s.logger.Error("failed to load job details",
			slog.Int64("job_id", jobID),
			slog.String("error", jobErr.Error()),
		)
	case runsErr != nil:
		s.logger.Warn("job run history unavailable",
			slog.Int64("job_id", jobID),
			slog.String("error", runsErr.Error()),
		)
	}
	recordActivation(NameJobDetails, jobErr != nil)
}

func (s *JobDetails) Deactivate() {
	s.lc.end()
}

func (s *JobDetails) State() model.ViewState[viewmodel.JobDetailsView] {
	return s.lc.snapshot()
}

// JobID returns the id of the loaded job, if any
func (s *JobDetails) JobID() (int64, bool) {
	state := s.lc.snapshot()
	if !state.IsReady() {
		return 0, false
	}
	return state.Data.Job.ID, true
}

// Refresh re-fetches the run history only. On failure the previous rows are kept.
func (s *JobDetails) Refresh(ctx context.Context) error {
	token, state := s.lc.peek()
	if !state.IsReady() {
		return ErrJobUnavailable
	}
	return s.refreshRuns(ctx, token, state.Data.Job.ID)
}

// RunJob triggers a run of the loaded job and refreshes the history. A
// trigger failure leaves the screen untouched.
func (s *JobDetails) RunJob(ctx context.Context) error {
	token, state := s.lc.peek()
	if !state.IsReady() {
		return ErrJobUnavailable
	}
	if !state.Data.CanRun {
		return ErrJobInactive
	}

	jobID := state.Data.Job.ID
	if err := triggerRun(ctx, s.repo, s.logger, jobID); err != nil {
		return err
	}

	// the new run may not be listed yet; no polling follows
	_ = s.refreshRuns(ctx, token, jobID)
	return nil
}

func (s *JobDetails) refreshRuns(ctx context.Context, token uint64, jobID int64) error {
	seq := s.lc.stamp()
	runs, err := s.repo.FetchJobRuns(ctx, jobID, 0, repository.DefaultRunsLimit)
	if errors.Is(err, context.Canceled) {
		s.logger.Debug("job runs refresh cancelled", slog.Int64("job_id", jobID))
		return err
	}
	if err != nil {
		s.logger.Warn("failed to refresh job runs",
			slog.Int64("job_id", jobID),
			slog.String("error", err.Error()),
		)
		return err
	}

	applied := s.lc.commitLatest(token, seq, func(state *model.ViewState[viewmodel.JobDetailsView]) {
		if state.IsReady() {
			*state = model.Ready(state.Data.WithRuns(runs.Runs))
		}
	})
	if !applied {
		s.logger.Debug("discarding stale runs response", slog.Int64("job_id", jobID))
	}
	return nil
}
