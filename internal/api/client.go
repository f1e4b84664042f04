// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the HealthNest backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/healthnest-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type so errors.Is(err, ErrTimeout) works for
// any timeout, regardless of message or cause.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Cause == nil
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeInvalidRequest
	ErrTypeInvalidResponse
	ErrTypeBackend
)

// String returns the error type name.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeInvalidRequest:
		return "invalid_request"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrNotReachable    = &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable"}
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "invalid response from backend"}
)

// IsConnection reports whether err is a transport failure (including timeouts).
func IsConnection(err error) bool {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Type == ErrTypeConnection || ce.Type == ErrTypeTimeout
}

// IsInvalidResponse reports whether err came from an undecodable body.
func IsInvalidResponse(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeInvalidResponse
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:5000)
	BaseURL string

	// Timeout per request. Zero means no timeout.
	Timeout time.Duration

	// Logger receives one debug line per call. Nil disables logging.
	Logger *zap.Logger

	// HTTPClient overrides the transport (tests). Timeout is ignored when set.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the HealthNest backend.
// Each call is a single request with no retries.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := api.NewClient("http://localhost:5000")
//	resp, err := client.Chat(ctx, api.ChatRequest{
//	    Message: "How much water should I drink?",
//	    Profile: profile,
//	})
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend client for baseURL.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger.Named("api"),
	}
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	status, err := c.do(ctx, http.MethodGet, PathHealth, nil, &result)
	if err != nil {
		return nil, err
	}
	result.StatusCode = status
	return &result, nil
}

// Analyze posts the profile to /health-check.
func (c *Client) Analyze(ctx context.Context, profile model.Profile) (*AnalysisResponse, error) {
	var result AnalysisResponse
	status, err := c.do(ctx, http.MethodPost, PathAnalysis, profile, &result)
	if err != nil {
		return nil, err
	}
	result.StatusCode = status
	return &result, nil
}

// Chat posts a message with its profile context to /chat.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var result ChatResponse
	status, err := c.do(ctx, http.MethodPost, PathChat, req, &result)
	if err != nil {
		return nil, err
	}
	result.StatusCode = status
	return &result, nil
}

// =============================================================================
// AUXILIARY ENDPOINTS
// =============================================================================

// The auxiliary endpoints have no dashboard fallback text, so an error
// payload is surfaced as an ErrTypeBackend error.

// PredictCalories posts macronutrient grams to /predict-calories.
func (c *Client) PredictCalories(ctx context.Context, req MacrosRequest) (*CaloriesResponse, error) {
	var result CaloriesResponse
	status, err := c.do(ctx, http.MethodPost, PathPredictCalories, req, &result)
	if err != nil {
		return nil, err
	}
	result.StatusCode = status
	if err := backendError(status, result.Error); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecommendExercise posts a weight and goal to /recommend-exercise.
func (c *Client) RecommendExercise(ctx context.Context, req ExerciseRequest) (*ExerciseResponse, error) {
	var result ExerciseResponse
	status, err := c.do(ctx, http.MethodPost, PathRecommendExercise, req, &result)
	if err != nil {
		return nil, err
	}
	result.StatusCode = status
	if err := backendError(status, result.Error); err != nil {
		return nil, err
	}
	return &result, nil
}

// PregnancyInfo fetches week-by-week pregnancy information (weeks 1-42).
func (c *Client) PregnancyInfo(ctx context.Context, week int) (*PregnancyResponse, error) {
	var result PregnancyResponse
	path := PathPregnancyInfo + "?week=" + strconv.Itoa(week)
	status, err := c.do(ctx, http.MethodGet, path, nil, &result)
	if err != nil {
		return nil, err
	}
	result.StatusCode = status
	if err := backendError(status, result.Error); err != nil {
		return nil, err
	}
	return &result, nil
}

// do performs one request and decodes the JSON body into out regardless of
// the HTTP status. It returns the HTTP status code.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	start := time.Now()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return 0, &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to create request", Cause: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return 0, &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		return 0, &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return resp.StatusCode, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to decode response (" + resp.Status + ")",
			Cause:   err,
		}
	}

	return resp.StatusCode, nil
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
