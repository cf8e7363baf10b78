package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
	"github.com/dmussaku/mongodb-etl-poc/internal/transport"
)

// Page size defaults applied when a non-positive limit is passed
const (
	DefaultJobsLimit        = 100
	DefaultRunsLimit        = 50
	DefaultConnectionsLimit = 100
)

// ETLRepository defines the backend capabilities used by the screens.
// Failures are returned unchanged from the transport as *transport.Error.
type ETLRepository interface {
	FetchHealth(ctx context.Context) (*model.HealthStatus, error)
	FetchJobs(ctx context.Context, offset, limit int) (*model.JobList, error)
	FetchJob(ctx context.Context, id int64) (*model.ETLJob, error)
	FetchJobRuns(ctx context.Context, jobID int64, offset, limit int) (*model.RunList, error)
	TriggerJobRun(ctx context.Context, jobID int64) error
	FetchConnections(ctx context.Context, offset, limit int) (*model.ConnectionList, error)
	TestTaskQueue(ctx context.Context) (*model.TaskQueueProbe, error)
}

// etlRepository implements ETLRepository over the REST contract
type etlRepository struct {
	client transport.Doer
}

// NewETLRepository creates a new repository backed by client
func NewETLRepository(client transport.Doer) ETLRepository {
	return &etlRepository{client: client}
}

func (r *etlRepository) FetchHealth(ctx context.Context) (*model.HealthStatus, error) {
	var health model.HealthStatus
	if err := r.client.Do(ctx, http.MethodGet, "/health/detailed", nil, nil, &health); err != nil {
		return nil, err
	}
	if health.Checks == nil {
		health.Checks = map[string]string{}
	}
	return &health, nil
}

func (r *etlRepository) FetchJobs(ctx context.Context, offset, limit int) (*model.JobList, error) {
	var list model.JobList
	if err := r.client.Do(ctx, http.MethodGet, "/jobs", page(offset, limit, DefaultJobsLimit), nil, &list); err != nil {
		return nil, err
	}
	list.Normalize()
	return &list, nil
}

func (r *etlRepository) FetchJob(ctx context.Context, id int64) (*model.ETLJob, error) {
	var job model.ETLJob
	if err := r.client.Do(ctx, http.MethodGet, jobPath(id), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *etlRepository) FetchJobRuns(ctx context.Context, jobID int64, offset, limit int) (*model.RunList, error) {
	var list model.RunList
	if err := r.client.Do(ctx, http.MethodGet, jobPath(jobID)+"/runs", page(offset, limit, DefaultRunsLimit), nil, &list); err != nil {
		return nil, err
	}
	list.Normalize()
	return &list, nil
}

// TriggerJobRun requests an ad-hoc run. The acknowledgement body is ignored.
func (r *etlRepository) TriggerJobRun(ctx context.Context, jobID int64) error {
	return r.client.Do(ctx, http.MethodPost, jobPath(jobID)+"/run", nil, nil, nil)
}

func (r *etlRepository) FetchConnections(ctx context.Context, offset, limit int) (*model.ConnectionList, error) {
	var list model.ConnectionList
	if err := r.client.Do(ctx, http.MethodGet, "/connections", page(offset, limit, DefaultConnectionsLimit), nil, &list); err != nil {
		return nil, err
	}
	list.Normalize()
	return &list, nil
}

// TestTaskQueue submits a probe task to the backend's task queue
func (r *etlRepository) TestTaskQueue(ctx context.Context) (*model.TaskQueueProbe, error) {
	var probe model.TaskQueueProbe
	if err := r.client.Do(ctx, http.MethodPost, "/test-celery", nil, nil, &probe); err != nil {
		return nil, err
	}
	return &probe, nil
}

func jobPath(id int64) string {
	return fmt.Sprintf("/jobs/%d", id)
}

func page(offset, limit, defaultLimit int) url.Values {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return url.Values{
		"skip":  {strconv.Itoa(offset)},
		"limit": {strconv.Itoa(limit)},
	}
}
