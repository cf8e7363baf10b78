package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmussaku/mongodb-etl-poc/internal/metrics"
)

const (
	DefaultBaseURL = "http://localhost:8000/api/v1"
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a fresh id on every outbound request
	RequestIDHeader = "X-Request-ID"
)

// Doer is the single backend exchange used by the repository layer
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Options configures a Client
type Options struct {
	BaseURL string
	Timeout time.Duration
	TLS     *tls.Config
}

// Client is an HTTP client for the ETL backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new backend client. Zero options fall back to the defaults.
func New(opts Options, logger *slog.Logger) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if opts.TLS != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = opts.TLS
		httpClient.Transport = transport
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the resolved backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one request against the backend. body, when non-nil, is sent as
// JSON; a 2xx response is decoded into out unless out is nil. Every failure is
// logged and returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	statusCode, err := c.do(ctx, method, path, query, body, out)

	metrics.BackendRequestDuration.WithLabelValues(method, metrics.StatusClass(statusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, "error").Inc()

		attrs := []any{
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", statusCode),
			slog.String("error", err.Error()),
		}
		if err.Timeout() {
			attrs = append(attrs, slog.Bool("timeout", true))
		}
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("backend request cancelled", attrs...)
			return err
		}
		c.logger.Error("backend request failed", attrs...)
		return err
	}

	metrics.BackendRequestsTotal.WithLabelValues(method, "ok").Inc()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, *Error) {
	fail := func(status int, raw []byte, cause error) (int, *Error) {
		return status, &Error{Method: method, Path: path, StatusCode: status, Body: raw, Cause: cause}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(0, nil, fmt.Errorf("failed to marshal request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fail(0, nil, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fail(resp.StatusCode, raw, ErrUnexpectedStatus)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fail(resp.StatusCode, raw, fmt.Errorf("failed to decode response: %w", err))
	}

	return resp.StatusCode, nil
}
