package viewmodel

import (
	"github.com/dmussaku/mongodb-etl-poc/internal/model"
)

// Dashboard projects the three dashboard fetches
func Dashboard(health *model.HealthStatus, jobs *model.JobList, connections *model.ConnectionList) DashboardView {
	checks := make([]HealthCheck, 0, len(model.DependencyServices))
	for _, service := range model.DependencyServices {
		status := health.Check(service)
		color, indicator := HealthColor(status)
		checks = append(checks, HealthCheck{
			Service:   service,
			Status:    status,
			Label:     healthLabel(status, color),
			Color:     color,
			Indicator: indicator,
		})
	}

	return DashboardView{
		Stats: Stats{
			TotalJobs:   jobs.Count,
			ActiveJobs:  jobs.ActiveCount(),
			Connections: connections.Count,
		},
		Health: HealthPanel{
			Status:     health.Status,
			AllHealthy: health.AllHealthy(),
			Checks:     checks,
		},
	}
}

// JobsList projects a page of jobs into table rows
func JobsList(list *model.JobList) JobsListView {
	rows := make([]JobRow, 0, len(list.Jobs))
	for _, job := range list.Jobs {
		loadType := LoadTypeLabel(job.LoadType)
		rows = append(rows, JobRow{
			ID:            job.ID,
			Name:          job.Name,
			Description:   orDefault(job.Description, noDescription),
			Source:        job.SourceTable,
			Destination:   job.DestTable,
			LoadType:      loadType,
			LoadTypeColor: LoadTypeColor(loadType),
			ActiveLabel:   ActiveLabel(job.IsActive),
			ActiveColor:   activeColor(job.IsActive),
			CanRun:        job.IsActive,
		})
	}

	view := JobsListView{Jobs: rows, Count: list.Count}
	if len(rows) == 0 {
		view.EmptyMessage = MsgNoJobs
	}
	return view
}

// JobDetails projects a job and its run history. degraded marks a history
// that could not be loaded.
func JobDetails(job *model.ETLJob, runs []model.JobRun, degraded bool) JobDetailsView {
	view := JobDetailsView{
		Job:             JobConfigOf(job),
		CanRun:          job.IsActive,
		Runs:            RunRows(runs),
		HistoryDegraded: degraded,
	}
	if len(view.Runs) == 0 {
		view.EmptyMessage = MsgNoRuns
	}
	return view
}

func JobConfigOf(job *model.ETLJob) JobConfig {
	return JobConfig{
		ID:                  job.ID,
		Name:                job.Name,
		Description:         orDefault(job.Description, noDescriptionProvided),
		Source:              job.SourceTable,
		Destination:         job.DestTable,
		LoadType:            LoadTypeLabel(job.LoadType),
		IncrementalColumn:   job.IncrementalColumn,
		Schedule:            job.ScheduleCron,
		ActiveLabel:         ActiveLabel(job.IsActive),
		ActiveColor:         activeColor(job.IsActive),
		AggregationPipeline: FormatPayload(job.AggregationPipeline),
		MaskingConfig:       FormatPayload(job.MaskingConfig),
		CreatedAt:           FormatDateTime(job.CreatedAt),
		UpdatedAt:           FormatDateTime(job.UpdatedAt),
	}
}

// RunRows keeps the backend order
func RunRows(runs []model.JobRun) []RunRow {
	rows := make([]RunRow, 0, len(runs))
	for i := range runs {
		run := &runs[i]
		completed := Placeholder
		if !run.InFlight() {
			completed = FormatDateTime(*run.CompletedAt)
		}
		rows = append(rows, RunRow{
			ID:               run.ID,
			Status:           run.Status,
			StatusColor:      RunStatusColor(run.Status),
			StartedAt:        FormatDateTime(run.StartedAt),
			CompletedAt:      completed,
			RecordsProcessed: run.RecordsProcessed,
			RecordsSuccess:   run.RecordsSuccess,
			RecordsFailed:    run.RecordsFailed,
			TriggeredBy:      run.TriggeredBy,
			ErrorMessage:     run.ErrorMessage,
			InFlight:         run.InFlight(),
		})
	}
	return rows
}

// Connections projects a page of connections into table rows
func Connections(list *model.ConnectionList) ConnectionsView {
	rows := make([]ConnectionRow, 0, len(list.Connections))
	for _, conn := range list.Connections {
		rows = append(rows, ConnectionRow{
			ID:        conn.ID,
			Name:      conn.Name,
			Type:      conn.ConnectionType,
			TypeColor: ConnectionColor(conn.ConnectionType),
			CreatedAt: FormatDate(conn.CreatedAt),
			UpdatedAt: FormatDate(conn.UpdatedAt),
		})
	}

	view := ConnectionsView{Connections: rows, Count: list.Count}
	if len(rows) == 0 {
		view.EmptyMessage = MsgNoConnections
	}
	return view
}

func activeColor(active bool) Color {
	if active {
		return ColorSuccess
	}
	return ColorDefault
}

func healthLabel(status string, color Color) string {
	switch {
	case color == ColorSuccess:
		return "Healthy"
	case color == ColorError:
		return "Error"
	case status == model.HealthStatusUnknown:
		return "Unknown"
	default:
		return "Degraded"
	}
}

// WithRuns replaces the run history of a details view, leaving the job section untouched
func (v JobDetailsView) WithRuns(runs []model.JobRun) JobDetailsView {
	v.Runs = RunRows(runs)
	v.HistoryDegraded = false
	v.EmptyMessage = ""
	if len(v.Runs) == 0 {
		v.EmptyMessage = MsgNoRuns
	}
	return v
}
