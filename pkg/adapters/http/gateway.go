// Package http implements ports.Gateway against the remote megaverse REST API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/megaverse/pkg/adapters/attrs"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/aretw0/megaverse/pkg/observability"
	"github.com/aretw0/megaverse/pkg/ports"
	"github.com/microcosm-cc/bluemonday"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// resources maps entity kinds to their REST collection.
var resources = map[domain.EntityKind]string{
	domain.EntityPolyanet: "polyanets",
	domain.EntitySoloon:   "soloons",
	domain.EntityCometh:   "comeths",
}

// Config is the process-wide gateway configuration. It is never mutated after New.
type Config struct {
	BaseURL     string
	CandidateID string
	// Delay is waited before every request as a courtesy to the remote service.
	Delay time.Duration
	// Timeout bounds a single request (transport level).
	Timeout time.Duration
}

// Gateway is a single-shot request wrapper. It performs no retries.
type Gateway struct {
	cfg     Config
	client  *http.Client
	policy  *bluemonday.Policy
	logger  *slog.Logger
	metrics *observability.Metrics
	sleep   func(ctx context.Context, d time.Duration) error
}

var _ ports.Gateway = (*Gateway)(nil)

// Option configures the gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default client (e.g. httptest.Server.Client()).
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

// WithLogger sets a structured logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithMetrics records request counts and latency.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// WithSleeper overrides how the courtesy delay is waited.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Gateway) {
		g.sleep = sleep
	}
}

// New creates a Gateway. A missing trailing slash on BaseURL is added.
func New(cfg Config, opts ...Option) *Gateway {
	if cfg.BaseURL != "" && !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	g := &Gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		policy: bluemonday.StrictPolicy(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// requestBody is the JSON payload shared by every entity endpoint.
type requestBody struct {
	CandidateID string `json:"candidateId"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
	Color       string `json:"color,omitempty"`
	Direction   string `json:"direction,omitempty"`
}

func (g *Gateway) body(row, column int) requestBody {
	return requestBody{CandidateID: g.cfg.CandidateID, Row: row, Column: column}
}

// CreatePolyanet places a Polyanet at (row, column).
func (g *Gateway) CreatePolyanet(ctx context.Context, row, column int) (*domain.Response, error) {
	return g.request(ctx, http.MethodPost, domain.EntityPolyanet, g.body(row, column))
}

// DeletePolyanet removes the Polyanet at (row, column).
func (g *Gateway) DeletePolyanet(ctx context.Context, row, column int) (*domain.Response, error) {
	return g.request(ctx, http.MethodDelete, domain.EntityPolyanet, g.body(row, column))
}

// CreateSoloon places a Soloon. attrs must carry a valid color.
func (g *Gateway) CreateSoloon(ctx context.Context, row, column int, a map[string]string) (*domain.Response, error) {
	params, err := attrs.Soloon(a)
	if err != nil {
		return nil, err
	}
	body := g.body(row, column)
	body.Color = params.Color
	return g.request(ctx, http.MethodPost, domain.EntitySoloon, body)
}

// DeleteSoloon removes the Soloon at (row, column).
func (g *Gateway) DeleteSoloon(ctx context.Context, row, column int) (*domain.Response, error) {
	return g.request(ctx, http.MethodDelete, domain.EntitySoloon, g.body(row, column))
}

// CreateCometh places a Cometh. attrs must carry a valid direction.
func (g *Gateway) CreateCometh(ctx context.Context, row, column int, a map[string]string) (*domain.Response, error) {
	params, err := attrs.Cometh(a)
	if err != nil {
		return nil, err
	}
	body := g.body(row, column)
	body.Direction = params.Direction
	return g.request(ctx, http.MethodPost, domain.EntityCometh, body)
}

// DeleteCometh removes the Cometh at (row, column).
func (g *Gateway) DeleteCometh(ctx context.Context, row, column int) (*domain.Response, error) {
	return g.request(ctx, http.MethodDelete, domain.EntityCometh, g.body(row, column))
}

func (g *Gateway) request(ctx context.Context, method string, kind domain.EntityKind, body requestBody) (*domain.Response, error) {
	if method != http.MethodPost && method != http.MethodDelete {
		return nil, fmt.Errorf("method %s not allowed, only POST and DELETE are supported", method)
	}

	if g.cfg.Delay > 0 {
		if err := g.sleep(ctx, g.cfg.Delay); err != nil {
			return nil, &domain.GatewayError{Message: "request cancelled", Err: err}
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := g.cfg.BaseURL + resources[kind]
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	op := opLabel(method)
	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.metrics.ObserveRequest(string(kind), op, 0, time.Since(start))
		g.logger.Debug("gateway request failed", "method", method, "url", url, "error", err)
		return nil, &domain.GatewayError{Message: fmt.Sprintf("Error: %v", err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	g.metrics.ObserveRequest(string(kind), op, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &domain.GatewayError{
			Status:  resp.StatusCode,
			Message: "failed to read response body",
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gwErr := &domain.GatewayError{
			Status:  resp.StatusCode,
			Payload: g.sanitize(raw),
			Message: fmt.Sprintf("Error: request failed with status code %d", resp.StatusCode),
		}
		g.logger.Debug("gateway request rejected",
			"method", method, "url", url, "status", resp.StatusCode, "payload", gwErr.Payload)
		return nil, gwErr
	}

	g.logger.Debug("gateway request succeeded", "method", method, "url", url, "status", resp.StatusCode)
	return &domain.Response{Status: resp.StatusCode, Body: decodeBody(raw)}, nil
}

// htmlEntities undoes the quoting bluemonday applies to plain text; < and > stay escaped.
var htmlEntities = strings.NewReplacer("&#34;", `"`, "&#39;", "'", "&amp;", "&")

// sanitize strips every tag from an untrusted error body.
func (g *Gateway) sanitize(raw []byte) string {
	clean := g.policy.SanitizeBytes(raw)
	return strings.TrimSpace(htmlEntities.Replace(string(clean)))
}

// decodeBody returns the JSON value of raw, or the raw text when it is not JSON.
func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return string(raw)
}

func opLabel(method string) string {
	if method == http.MethodDelete {
		return string(domain.OpDelete)
	}
	return string(domain.OpCreate)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
