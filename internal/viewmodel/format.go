package viewmodel

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"

	// Placeholder rendered for missing values
	Placeholder = "-"
)

// FormatDate renders the date part of ts, or "-" when it is missing
func FormatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return Placeholder
	}
	return ts.Format(dateLayout)
}

// FormatDateTime renders ts with second precision, or "-" when it is missing
func FormatDateTime(ts model.Timestamp) string {
	if ts.IsZero() {
		return Placeholder
	}
	return ts.Format(dateTimeLayout)
}

// FormatPayload pretty-prints an opaque JSON document with two-space
// indentation. It returns nil for absent or null payloads; payloads that are
// not valid JSON are returned verbatim.
func FormatPayload(raw json.RawMessage) *string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, trimmed, "", "  "); err != nil {
		verbatim := string(trimmed)
		return &verbatim
	}

	formatted := out.String()
	return &formatted
}

// ActiveLabel renders a job's active flag
func ActiveLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// LoadTypeLabel returns the load type, defaulting to full
func LoadTypeLabel(loadType string) string {
	if strings.TrimSpace(loadType) == "" {
		return model.LoadTypeFull
	}
	return loadType
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
