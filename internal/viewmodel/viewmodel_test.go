package viewmodel

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
)

func TestDashboardHealthMapping(t *testing.T) {
	health := &model.HealthStatus{
		Status: "unhealthy",
		Checks: map[string]string{
			"postgres": "healthy",
			"redis":    "error: connection refused",
			"rabbitmq": "healthy",
			"mongodb":  "healthy",
		},
	}
	jobs := &model.JobList{Jobs: []model.ETLJob{{ID: 1, IsActive: true}, {ID: 2}}, Count: 7}
	connections := &model.ConnectionList{Count: 3}

	view := Dashboard(health, jobs, connections)

	assert.False(t, view.Health.AllHealthy)
	require.Len(t, view.Health.Checks, 4)
	assert.Equal(t, "postgres", view.Health.Checks[0].Service)
	assert.Equal(t, ColorSuccess, view.Health.Checks[0].Color)
	assert.Equal(t, "redis", view.Health.Checks[1].Service)
	assert.Equal(t, ColorError, view.Health.Checks[1].Color)
	assert.Equal(t, IndicatorError, view.Health.Checks[1].Indicator)
	assert.Equal(t, "Error", view.Health.Checks[1].Label)

	assert.Equal(t, 7, view.Stats.TotalJobs)
	assert.Equal(t, 1, view.Stats.ActiveJobs)
	assert.Nil(t, view.Stats.RunningJobs)
	assert.Equal(t, 3, view.Stats.Connections)
}

func TestDashboardHealthChecks(t *testing.T) {
	health := &model.HealthStatus{
		Status: "unhealthy",
		Checks: map[string]string{
			"postgres": "healthy",
			"redis":    "degraded",
			"rabbitmq": "error: timeout",
			"mongodb":  "healthy",
		},
	}
	view := Dashboard(health, &model.JobList{}, &model.ConnectionList{})

	tests := []struct {
		service   string
		color     Color
		indicator HealthIndicator
		label     string
	}{
		{"postgres", ColorSuccess, IndicatorCheck, "Healthy"},
		{"redis", ColorWarning, IndicatorRunning, "Degraded"},
		{"rabbitmq", ColorError, IndicatorError, "Error"},
		{"mongodb", ColorSuccess, IndicatorCheck, "Healthy"},
	}

	assert.False(t, view.Health.AllHealthy)
	require.Len(t, view.Health.Checks, len(tests))
	for i, tt := range tests {
		check := view.Health.Checks[i]
		assert.Equal(t, tt.service, check.Service)
		assert.Equal(t, tt.color, check.Color, tt.service)
		assert.Equal(t, tt.indicator, check.Indicator, tt.service)
		assert.Equal(t, tt.label, check.Label, tt.service)
	}
}

func TestDashboardMissingCheckIsWarning(t *testing.T) {
	view := Dashboard(&model.HealthStatus{Checks: map[string]string{}}, &model.JobList{}, &model.ConnectionList{})

	for _, check := range view.Health.Checks {
		assert.Equal(t, model.HealthStatusUnknown, check.Status)
		assert.Equal(t, ColorWarning, check.Color)
		assert.Equal(t, IndicatorRunning, check.Indicator)
		assert.Equal(t, "Unknown", check.Label)
	}
}

func TestConnectionColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"mongodb", ColorSuccess},
		{"PostgreS", ColorPrimary},
		{"mysql", ColorInfo},
		{"bigquery", ColorWarning},
		{"s3", ColorSecondary},
		{"oracle", ColorDefault},
		{"", ColorDefault},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConnectionColor(tt.input), tt.input)
	}
}

func TestRunStatusColor(t *testing.T) {
	assert.Equal(t, ColorSuccess, RunStatusColor(model.RunStatusSuccess))
	assert.Equal(t, ColorError, RunStatusColor(model.RunStatusFailed))
	assert.Equal(t, ColorInfo, RunStatusColor(model.RunStatusRunning))
	assert.Equal(t, ColorWarning, RunStatusColor(model.RunStatusPending))
	assert.Equal(t, ColorDefault, RunStatusColor("cancelled"))
	assert.Equal(t, ColorSuccess, RunStatusColor("SUCCESS"))
	assert.Equal(t, ColorError, RunStatusColor("Failed"))
}

func TestJobsListDefaultsAndEmpty(t *testing.T) {
	empty := JobsList(&model.JobList{Jobs: []model.ETLJob{}})
	assert.Equal(t, MsgNoJobs, empty.EmptyMessage)
	assert.NotNil(t, empty.Jobs)

	view := JobsList(&model.JobList{Jobs: []model.ETLJob{
		{ID: 1, Name: "a", LoadType: "incremental", IsActive: true},
		{ID: 2, Name: "b"},
	}, Count: 2})

	require.Len(t, view.Jobs, 2)
	assert.Empty(t, view.EmptyMessage)
	assert.Equal(t, ColorPrimary, view.Jobs[0].LoadTypeColor)
	assert.True(t, view.Jobs[0].CanRun)
	assert.Equal(t, "No description", view.Jobs[1].Description)
	assert.Equal(t, model.LoadTypeFull, view.Jobs[1].LoadType)
	assert.Equal(t, "Inactive", view.Jobs[1].ActiveLabel)
	assert.False(t, view.Jobs[1].CanRun)
}

func TestJobDetailsProjection(t *testing.T) {
	completed := model.NewTimestamp(time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC))
	job := &model.ETLJob{
		ID:                  5,
		Name:                "users",
		AggregationPipeline: json.RawMessage(`[{"$match":{"active":true}}]`),
		MaskingConfig:       json.RawMessage(`null`),
		IsActive:            true,
	}
	runs := []model.JobRun{
		{ID: 2, Status: model.RunStatusRunning, StartedAt: model.NewTimestamp(time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC))},
		{ID: 1, Status: model.RunStatusSuccess, CompletedAt: &completed, RecordsProcessed: 10},
	}

	view := JobDetails(job, runs, false)

	assert.Equal(t, "No description provided", view.Job.Description)
	require.NotNil(t, view.Job.AggregationPipeline)
	assert.Equal(t, "[\n  {\n    \"$match\": {\n      \"active\": true\n    }\n  }\n]", *view.Job.AggregationPipeline)
	assert.Nil(t, view.Job.MaskingConfig)
	assert.True(t, view.CanRun)

	require.Len(t, view.Runs, 2)
	assert.Equal(t, int64(2), view.Runs[0].ID)
	assert.True(t, view.Runs[0].InFlight)
	assert.Equal(t, Placeholder, view.Runs[0].CompletedAt)
	assert.Equal(t, "2024-03-01 11:00:00", view.Runs[0].StartedAt)
	assert.Equal(t, "2024-03-01 10:05:00", view.Runs[1].CompletedAt)
	assert.Equal(t, ColorSuccess, view.Runs[1].StatusColor)
	assert.Empty(t, view.EmptyMessage)
}

func TestJobDetailsDegradedHistory(t *testing.T) {
	view := JobDetails(&model.ETLJob{ID: 1}, nil, true)
	assert.True(t, view.HistoryDegraded)
	assert.NotNil(t, view.Runs)
	assert.Equal(t, MsgNoRuns, view.EmptyMessage)
}

func TestConnectionsProjection(t *testing.T) {
	view := Connections(&model.ConnectionList{Connections: []model.Connection{
		{ID: 1, Name: "warehouse", ConnectionType: "Snowflake", CreatedAt: model.NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))},
	}, Count: 1})

	require.Len(t, view.Connections, 1)
	assert.Equal(t, ColorDefault, view.Connections[0].TypeColor)
	assert.Equal(t, "2024-01-02", view.Connections[0].CreatedAt)
	assert.Equal(t, Placeholder, view.Connections[0].UpdatedAt)

	empty := Connections(&model.ConnectionList{Connections: []model.Connection{}})
	assert.Equal(t, MsgNoConnections, empty.EmptyMessage)
}

func TestFormatPayloadInvalidVerbatim(t *testing.T) {
	out := FormatPayload(json.RawMessage(`{broken`))
	require.NotNil(t, out)
	assert.Equal(t, "{broken", *out)
	assert.Nil(t, FormatPayload(nil))
}
