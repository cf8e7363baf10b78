package viewmodel

import (
	"github.com/dmussaku/mongodb-etl-poc/internal/model"
)

// Messages rendered by the screens
const (
	MsgDashboardFailed   = "Failed to load dashboard data"
	MsgJobsFailed        = "Failed to load jobs"
	MsgJobDetailsFailed  = "Failed to load job details"
	MsgConnectionsFailed = "Failed to load connections"

	MsgNoJobs        = "No ETL jobs found. Create your first job to get started."
	MsgNoConnections = "No database connections found. Add your first connection to get started."
	MsgNoRuns        = "No job runs found. Run this job to see execution history."

	noDescription         = "No description"
	noDescriptionProvided = "No description provided"
)

// Stats are the dashboard counters. RunningJobs is nil because no backend
// resource reports it.
type Stats struct {
	TotalJobs   int  `json:"total_jobs"`
	ActiveJobs  int  `json:"active_jobs"`
	RunningJobs *int `json:"running_jobs"`
	Connections int  `json:"connections"`
}

// HealthCheck is one dependency row of the health panel
type HealthCheck struct {
	Service   string          `json:"service"`
	Status    string          `json:"status"`
	Label     string          `json:"label"`
	Color     Color           `json:"color"`
	Indicator HealthIndicator `json:"indicator"`
}

type HealthPanel struct {
	Status     string        `json:"status"`
	AllHealthy bool          `json:"all_healthy"`
	Checks     []HealthCheck `json:"checks"`
}

type DashboardView struct {
	Stats  Stats       `json:"stats"`
	Health HealthPanel `json:"health"`
}

type JobRow struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	LoadType      string `json:"load_type"`
	LoadTypeColor Color  `json:"load_type_color"`
	ActiveLabel   string `json:"active_label"`
	ActiveColor   Color  `json:"active_color"`
	CanRun        bool   `json:"can_run"`
}

type JobsListView struct {
	Jobs         []JobRow `json:"jobs"`
	Count        int      `json:"count"`
	EmptyMessage string   `json:"empty_message,omitempty"`
}

type JobConfig struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	Source              string  `json:"source"`
	Destination         string  `json:"destination"`
	LoadType            string  `json:"load_type"`
	IncrementalColumn   string  `json:"incremental_column,omitempty"`
	Schedule            string  `json:"schedule,omitempty"`
	ActiveLabel         string  `json:"active_label"`
	ActiveColor         Color   `json:"active_color"`
	AggregationPipeline *string `json:"aggregation_pipeline,omitempty"`
	MaskingConfig       *string `json:"masking_config,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type RunRow struct {
	ID               int64           `json:"id"`
	Status           model.RunStatus `json:"status"`
	StatusColor      Color           `json:"status_color"`
	StartedAt        string          `json:"started_at"`
	CompletedAt      string          `json:"completed_at"`
	RecordsProcessed int64           `json:"records_processed"`
	RecordsSuccess   int64           `json:"records_success"`
	RecordsFailed    int64           `json:"records_failed"`
	TriggeredBy      string          `json:"triggered_by"`
	ErrorMessage     string          `json:"error_message,omitempty"`
	InFlight         bool            `json:"in_flight"`
}

type JobDetailsView struct {
	Job             JobConfig `json:"job"`
	CanRun          bool      `json:"can_run"`
	Runs            []RunRow  `json:"runs"`
	EmptyMessage    string    `json:"empty_message,omitempty"`
	HistoryDegraded bool      `json:"history_degraded"`
}

type ConnectionRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	TypeColor Color  `json:"type_color"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ConnectionsView struct {
	Connections  []ConnectionRow `json:"connections"`
	Count        int             `json:"count"`
	EmptyMessage string          `json:"empty_message,omitempty"`
}
