// Package apiclient talks to the remote clinic REST API. Every request carries
// the current session's bearer token when there is one; responses are decoded
// into internal/models types and non-2xx statuses become *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/madhurinidan/clinic-web/pkg/circuitbreaker"
	"github.com/madhurinidan/clinic-web/pkg/errors"
	"github.com/madhurinidan/clinic-web/pkg/httpclient"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"github.com/madhurinidan/clinic-web/pkg/tracing"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	LocalBaseURL  = "http://localhost:5000/api"
	RemoteBaseURL = "https://doctor-management-backend-k8ns.onrender.com/api"

	maxErrorBody = 64 << 10
)

// ErrUnauthorized matches any *APIError with status 401
var ErrUnauthorized = errors.ErrUnauthorized

// BaseURLFor picks the API base URL for an application environment
func BaseURLFor(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development", "local":
		return LocalBaseURL
	default:
		return RemoteBaseURL
	}
}

// TokenSource returns the bearer token to send, or "" for none
type TokenSource func(ctx context.Context) string

// APIError is a non-2xx response from the clinic API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("clinic api returned status %d", e.Status)
	}
	return fmt.Sprintf("clinic api returned status %d: %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// ServerMessage returns the server-provided message carried by err, if any
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// Client is the clinic API client
type Client struct {
	baseURL    string
	httpClient httpclient.Client
	token      TokenSource
	breaker    *gobreaker.CircuitBreaker
}

// Option customizes a Client
type Option func(*Client)

// WithBreaker replaces the circuit breaker guarding every request
func WithBreaker(cfg circuitbreaker.Config) Option {
	return func(c *Client) {
		if cfg.IsSuccessful == nil {
			cfg.IsSuccessful = countsAsSuccess
		}
		c.breaker = circuitbreaker.New(cfg)
	}
}

// New creates a client. A nil token source sends every request anonymously.
func New(baseURL string, httpClient httpclient.Client, token TokenSource, opts ...Option) *Client {
	if token == nil {
		token = func(context.Context) string { return "" }
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		WithBreaker(circuitbreaker.DefaultConfig("clinic-api"))(c)
	}
	return c
}

// countsAsSuccess keeps client-side errors from tripping the breaker: a 4xx
// means the API is up and answering.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status < http.StatusInternalServerError
	}
	return false
}

// BaseURL returns the API base URL in use
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	operation   string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonRequest(operation, method, path string, payload any) (request, error) {
	req := request{operation: operation, method: method, path: path, contentType: "application/json"}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("failed to encode %s request: %w", operation, err)
	}
	req.body = bytes.NewReader(data)
	return req, nil
}

// send performs r once through the breaker and returns the raw 2xx body. An
// open breaker fails the call immediately as unavailable; nothing is retried.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	body, err := circuitbreaker.Execute(c.breaker, func() ([]byte, error) {
		return c.attempt(ctx, r)
	})
	if circuitbreaker.IsRejection(err) {
		return nil, fmt.Errorf("%s: %w: %w", r.operation, errors.ErrUnavailable, err)
	}
	return body, err
}

// attempt performs a single round trip
func (c *Client) attempt(ctx context.Context, r request) ([]byte, error) {
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "clinic-api."+r.operation,
		attribute.String("http.request.method", r.method),
		attribute.String("url.path", r.path),
	)
	defer span.End()

	httpReq, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", r.operation, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}
	authenticated := false
	if token := c.token(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
		authenticated = true
	}
	tracing.InjectHeaders(ctx, httpReq.Header)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		c.record(ctx, r, "error", 0, duration, authenticated)
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("%s: %w: %v", r.operation, errors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(body)}

		duration := metrics.MeasureDuration(start)
		c.record(ctx, r, "error", resp.StatusCode, duration, authenticated)
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		c.record(ctx, r, "error", resp.StatusCode, duration, authenticated)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read %s response: %w", r.operation, err)
	}

	c.record(ctx, r, "success", resp.StatusCode, duration, authenticated)
	return body, nil
}

func (c *Client) record(ctx context.Context, r request, status string, statusCode int, duration float64, authenticated bool) {
	metrics.APIClientRequestDuration.WithLabelValues(r.operation, status).Observe(duration)
	metrics.APIClientRequestTotal.WithLabelValues(r.operation, status).Inc()

	logger.LogAPICall(ctx, r.operation, status, duration,
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status_code", statusCode),
		zap.Bool("authenticated", authenticated),
	)
}

// do sends r and decodes a 2xx body into out when out is non-nil
func (c *Client) do(ctx context.Context, r request, out any) error {
	body, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", r.operation, err)
	}
	return nil
}

// errorMessage extracts `error` or `message` from a JSON error body
func errorMessage(body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	var text string
	if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &text) == nil && text != "" {
		return text
	}
	return payload.Message
}
