package model

// RunStatus is the execution status of a job run
type RunStatus string

const (
	RunStatusPending RunStatus = "pending"
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// JobRun is one execution instance of an ETL job
type JobRun struct {
	ID               int64      `json:"id"`
	Status           RunStatus  `json:"status"`
	StartedAt        Timestamp  `json:"started_at"`
	CompletedAt      *Timestamp `json:"completed_at,omitempty"`
	RecordsProcessed int64      `json:"records_processed"`
	RecordsSuccess   int64      `json:"records_success"`
	RecordsFailed    int64      `json:"records_failed"`
	TriggeredBy      string     `json:"triggered_by"` // manual | schedule | api
	ErrorMessage     string     `json:"error_message,omitempty"`
}

// InFlight returns true if the run has not completed yet
func (r *JobRun) InFlight() bool {
	return r.CompletedAt == nil || r.CompletedAt.IsZero()
}

// RunList is the response of GET /jobs/{id}/runs, most recent first as delivered
type RunList struct {
	Runs []JobRun `json:"runs"`
}

// Normalize replaces missing collections with empty ones
func (l *RunList) Normalize() {
	if l.Runs == nil {
		l.Runs = []JobRun{}
	}
}
