package screen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
)

var errBackend = errors.New("backend unavailable")

// fakeRepository serves canned responses. Optional hooks override them.
type fakeRepository struct {
	mu sync.Mutex

	health      *model.HealthStatus
	healthErr   error
	jobs        *model.JobList
	jobsErr     error
	connections *model.ConnectionList
	connErr     error

	fetchJob     func(ctx context.Context, id int64) (*model.ETLJob, error)
	fetchJobRuns func(ctx context.Context, id int64) (*model.RunList, error)
	triggerErr   error

	triggered []int64
}

func (f *fakeRepository) FetchHealth(ctx context.Context) (*model.HealthStatus, error) {
	return f.health, f.healthErr
}

func (f *fakeRepository) FetchJobs(ctx context.Context, offset, limit int) (*model.JobList, error) {
	return f.jobs, f.jobsErr
}

func (f *fakeRepository) FetchJob(ctx context.Context, id int64) (*model.ETLJob, error) {
	return f.fetchJob(ctx, id)
}

func (f *fakeRepository) FetchJobRuns(ctx context.Context, jobID int64, offset, limit int) (*model.RunList, error) {
	return f.fetchJobRuns(ctx, jobID)
}

func (f *fakeRepository) TriggerJobRun(ctx context.Context, jobID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered = append(f.triggered, jobID)
	return f.triggerErr
}

func (f *fakeRepository) FetchConnections(ctx context.Context, offset, limit int) (*model.ConnectionList, error) {
	return f.connections, f.connErr
}

func (f *fakeRepository) TestTaskQueue(ctx context.Context) (*model.TaskQueueProbe, error) {
	return &model.TaskQueueProbe{}, nil
}

func (f *fakeRepository) triggerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.triggered)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func healthyStatus() *model.HealthStatus {
	return &model.HealthStatus{Status: "healthy", Checks: map[string]string{
		"postgres": "healthy", "redis": "healthy", "rabbitmq": "healthy", "mongodb": "healthy",
	}}
}
