// Package client is the HTTP transport to the learning-journal backend. Every operation
// takes a typed request, returns a typed response, and fails only with *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/internai/internal/config"
	"github.com/hyperjump/internai/internal/models"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// RequestIDHeader carries a per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// Client calls the backend routes under a fixed base endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for cfg.BaseURL. The endpoint is fixed for the client's lifetime.
func New(cfg config.APIConfig, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	c := &Client{
		baseURL:    u.Scheme + "://" + u.Host + strings.TrimRight(u.Path, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the endpoint the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateDailyLog submits a log. POST /logs/daily
func (c *Client) CreateDailyLog(ctx context.Context, sub models.DailyLogSubmission) (*models.DailyLogRecord, error) {
	var rec models.DailyLogRecord
	if err := c.do(ctx, OpCreateDailyLog, http.MethodPost, apiPrefix+"/logs/daily", nil, sub, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetDailyLog fetches the log for date. GET /logs/daily/{date}
func (c *Client) GetDailyLog(ctx context.Context, date models.Date) (*models.DailyLogRecord, error) {
	var rec models.DailyLogRecord
	path := apiPrefix + "/logs/daily/" + url.PathEscape(date.String())
	if err := c.do(ctx, OpGetDailyLog, http.MethodGet, path, nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListDailyLogs pages through logs. GET /logs/daily?skip=&limit=
func (c *Client) ListDailyLogs(ctx context.Context, skip, limit int) ([]models.DailyLogRecord, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	var recs []models.DailyLogRecord
	if err := c.do(ctx, OpListDailyLogs, http.MethodGet, apiPrefix+"/logs/daily", q, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// GenerateSummary asks for a period summary. POST /reasoning/summarize
func (c *Client) GenerateSummary(ctx context.Context, req models.SummaryRequest) (*models.SummaryResponse, error) {
	var resp models.SummaryResponse
	if err := c.do(ctx, OpGenerateSummary, http.MethodPost, apiPrefix+"/reasoning/summarize", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExplainConcept asks for an explanation. POST /reasoning/explain
func (c *Client) ExplainConcept(ctx context.Context, req models.ExplainRequest) (*models.ExplainResponse, error) {
	var resp models.ExplainResponse
	if err := c.do(ctx, OpExplainConcept, http.MethodPost, apiPrefix+"/reasoning/explain", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SemanticSearch runs a similarity search. POST /reasoning/search
// Result contents are decoded into the variant selected by q.SearchType; order is kept.
func (c *Client) SemanticSearch(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error) {
	var wire struct {
		Query   string `json:"query"`
		Results []struct {
			Score   float64         `json:"score"`
			Content json.RawMessage `json:"content"`
		} `json:"results"`
	}
	if err := c.do(ctx, OpSemanticSearch, http.MethodPost, apiPrefix+"/reasoning/search", nil, q, &wire); err != nil {
		return nil, err
	}
	resp := &models.SearchResponse{Query: wire.Query}
	if wire.Results != nil {
		resp.Results = make([]models.SearchResult, 0, len(wire.Results))
	}
	for i, r := range wire.Results {
		content, err := models.DecodeSearchContent(q.SearchType, r.Content)
		if err != nil {
			return nil, transportError(OpSemanticSearch, fmt.Errorf("result %d: %w", i, err))
		}
		resp.Results = append(resp.Results, models.SearchResult{Score: r.Score, Content: content})
	}
	return resp, nil
}

// LearningGuidance asks what to learn next. GET /reasoning/guidance
func (c *Client) LearningGuidance(ctx context.Context) (*models.GuidanceResponse, error) {
	var resp models.GuidanceResponse
	if err := c.do(ctx, OpLearningGuidance, http.MethodGet, apiPrefix+"/reasoning/guidance", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks the backend. GET /health (not under /api/v1)
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var resp models.HealthStatus
	if err := c.do(ctx, OpHealth, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, op Op, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return transportError(op, fmt.Errorf("marshal request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return transportError(op, fmt.Errorf("create request: %w", err))
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("op", string(op)),
			zap.String("request_id", requestID),
			zap.Error(err))
		return transportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(op, fmt.Errorf("read response: %w", err))
	}
	c.logger.Debug("api request",
		zap.String("op", string(op)),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := backendError(op, resp.StatusCode, data)
		c.logger.Warn("api request rejected",
			zap.String("op", string(op)),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return transportError(op, errors.New("empty response body"))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return transportError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
