package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Options{BaseURL: server.URL, Timeout: timeout}, logger)
}

func TestNewDefaults(t *testing.T) {
	client := New(Options{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func TestDoSendsHeadersAndDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("skip"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":3}`))
	}, time.Second)

	var out struct {
		Count int `json:"count"`
	}
	err := client.Do(context.Background(), http.MethodGet, "/jobs", url.Values{"skip": {"0"}}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Count)
}

func TestDoEncodesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "value", payload["key"])
		w.WriteHeader(http.StatusAccepted)
	}, time.Second)

	err := client.Do(context.Background(), http.MethodPost, "/things", nil, map[string]string{"key": "value"}, nil)
	require.NoError(t, err)
}

func TestDoNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Job not found"}`))
	}, time.Second)

	err := client.Do(context.Background(), http.MethodGet, "/jobs/9", nil, nil, nil)
	require.Error(t, err)

	transportErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, transportErr.StatusCode)
	assert.Equal(t, "/jobs/9", transportErr.Path)
	assert.JSONEq(t, `{"detail":"Job not found"}`, string(transportErr.Body))
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.False(t, transportErr.Timeout())
}

func TestDoUndecodableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, time.Second)

	var out map[string]any
	err := client.Do(context.Background(), http.MethodGet, "/health/detailed", nil, nil, &out)

	transportErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, transportErr.StatusCode)
	assert.Equal(t, "not json", string(transportErr.Body))
}

func TestDoTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	err := client.Do(context.Background(), http.MethodGet, "/jobs", nil, nil, nil)

	transportErr, ok := AsError(err)
	require.True(t, ok)
	assert.Zero(t, transportErr.StatusCode)
	assert.True(t, transportErr.Timeout())
}

func TestDoNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	client := New(Options{BaseURL: target, Timeout: time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := client.Do(context.Background(), http.MethodGet, "/jobs", nil, nil, nil)

	transportErr, ok := AsError(err)
	require.True(t, ok)
	assert.Zero(t, transportErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestDoCancelledLogsAtDebug(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := New(Options{BaseURL: server.URL, Timeout: time.Second}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := client.Do(ctx, http.MethodGet, "/jobs", nil, nil, nil)

	_, ok := AsError(err)
	require.True(t, ok)
	assert.ErrorIs(t, err, context.Canceled)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "backend request cancelled", entry["msg"])
}
