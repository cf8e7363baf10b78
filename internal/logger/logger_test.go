package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for raw, want := range tests {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewFromConfig(&buf, "info", "json")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("visible", slog.Int64("job_id", 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "etl-console", entry["app"])
	assert.InDelta(t, 3, entry["job_id"], 0)
}

func TestNewFromConfigText(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewFromConfig(&buf, "debug", "text")
	require.NoError(t, err)

	log.Debug("details")
	assert.Contains(t, buf.String(), "msg=details")

	_, err = NewFromConfig(&buf, "info", "xml")
	assert.Error(t, err)
}
