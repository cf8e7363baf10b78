package viewmodel

import (
	"strings"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
)

// Color is a presentation category, mapped to actual colors by the UI
type Color string

const (
	ColorSuccess   Color = "success"
	ColorError     Color = "error"
	ColorWarning   Color = "warning"
	ColorInfo      Color = "info"
	ColorPrimary   Color = "primary"
	ColorSecondary Color = "secondary"
	ColorDefault   Color = "default"
)

var connectionColors = map[string]Color{
	"mongodb":  ColorSuccess,
	"postgres": ColorPrimary,
	"mysql":    ColorInfo,
	"bigquery": ColorWarning,
	"s3":       ColorSecondary,
}

var runStatusColors = map[model.RunStatus]Color{
	model.RunStatusSuccess: ColorSuccess,
	model.RunStatusFailed:  ColorError,
	model.RunStatusRunning: ColorInfo,
	model.RunStatusPending: ColorWarning,
}

// ConnectionColor maps a connection type tag, case-insensitively
func ConnectionColor(connectionType string) Color {
	if color, ok := connectionColors[strings.ToLower(strings.TrimSpace(connectionType))]; ok {
		return color
	}
	return ColorDefault
}

// RunStatusColor maps a run status case-insensitively; unknown statuses use
// the default color
func RunStatusColor(status model.RunStatus) Color {
	normalized := model.RunStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if color, ok := runStatusColors[normalized]; ok {
		return color
	}
	return ColorDefault
}

// LoadTypeColor highlights incremental loads
func LoadTypeColor(loadType string) Color {
	if loadType == model.LoadTypeIncremental {
		return ColorPrimary
	}
	return ColorDefault
}

// HealthIndicator is the icon hint paired with a health color
type HealthIndicator string

const (
	IndicatorCheck   HealthIndicator = "check"
	IndicatorError   HealthIndicator = "error"
	IndicatorRunning HealthIndicator = "running"
)

// HealthColor maps a dependency check value
func HealthColor(status string) (Color, HealthIndicator) {
	switch {
	case status == model.HealthStatusHealthy:
		return ColorSuccess, IndicatorCheck
	case strings.Contains(status, "error"):
		return ColorError, IndicatorError
	default:
		return ColorWarning, IndicatorRunning
	}
}
