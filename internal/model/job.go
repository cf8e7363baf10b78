package model

import "encoding/json"

// Load types known to the backend. The set is open; unknown values are kept as-is.
const (
	LoadTypeFull        = "full"
	LoadTypeIncremental = "incremental"
)

// ETLJob is a configured, repeatable data-movement definition
type ETLJob struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	SourceTable         string          `json:"source_table"`
	DestTable           string          `json:"dest_table"`
	LoadType            string          `json:"load_type"`
	IncrementalColumn   string          `json:"incremental_column,omitempty"`
	ScheduleCron        string          `json:"schedule_cron,omitempty"`
	IsActive            bool            `json:"is_active"`
	AggregationPipeline json.RawMessage `json:"aggregation_pipeline,omitempty"` // opaque, rendered verbatim
	MaskingConfig       json.RawMessage `json:"masking_config,omitempty"`       // opaque, rendered verbatim
	CreatedBy           string          `json:"created_by,omitempty"`
	CreatedAt           Timestamp       `json:"created_at"`
	UpdatedAt           Timestamp       `json:"updated_at"`
}

// JobList is the response of GET /jobs
type JobList struct {
	Jobs  []ETLJob `json:"jobs"`
	Count int      `json:"count"`
}

// Normalize replaces missing collections with empty ones
func (l *JobList) Normalize() {
	if l.Jobs == nil {
		l.Jobs = []ETLJob{}
	}
}

// ActiveCount returns the number of active jobs in this page only
func (l *JobList) ActiveCount() int {
	count := 0
	for _, job := range l.Jobs {
		if job.IsActive {
			count++
		}
	}
	return count
}

// TaskQueueProbe is the response of POST /test-celery
type TaskQueueProbe struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
}
