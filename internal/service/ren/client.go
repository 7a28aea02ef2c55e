package ren

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	drepo "ecogrid/internal/domain/repository"
	xhttp "ecogrid/pkg/http"
	xlogger "ecogrid/pkg/logger"
)

const (
	endpointConsumption = "/electricity-consumption-supply-daily"
	endpointProduction  = "/electricity-production-breakdown-daily"
	endpointPrices      = "/electricity-market-prices-daily"
)

// Client implements a GridSource backed by the REN Data Hub daily endpoints.
// The three resources are fetched concurrently under one shared timeout; a
// non-2xx or timeout on any of them fails the whole group.
type Client struct {
	baseURL  string
	proxyURL string
	timeout  time.Duration
	http     *xhttp.Client
	logger   *xlogger.Logger
}

// New creates a new REN GridSource.
func New(baseURL, proxyURL string, timeout time.Duration, logger *xlogger.Logger) drepo.GridSource {
	return &Client{
		baseURL:  baseURL,
		proxyURL: proxyURL,
		timeout:  timeout,
		http:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:   logger,
	}
}

// FetchDaily fetches the request group over the primary transport.
func (c *Client) FetchDaily(ctx context.Context) (*drepo.DailyPayloads, error) {
	return c.fetchGroup(ctx, c.baseURL)
}

// FetchDailyFallback fetches the identical group through the proxy prefix.
func (c *Client) FetchDailyFallback(ctx context.Context) (*drepo.DailyPayloads, error) {
	if c.proxyURL == "" {
		return nil, fmt.Errorf("ren: no fallback transport configured")
	}
	return c.fetchGroup(ctx, c.proxyURL+c.baseURL)
}

// HasFallback reports whether a proxy transport is configured.
func (c *Client) HasFallback() bool { return c.proxyURL != "" }

type groupResult struct {
	idx     int
	payload map[string]any
	err     error
}

func (c *Client) fetchGroup(parent context.Context, base string) (*drepo.DailyPayloads, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	endpoints := [3]string{endpointConsumption, endpointProduction, endpointPrices}
	results := make(chan groupResult, len(endpoints))

	for i, ep := range endpoints {
		go func(idx int, url string) {
			payload, err := c.fetchOne(ctx, url)
			results <- groupResult{idx: idx, payload: payload, err: err}
		}(i, base+ep)
	}

	var payloads [3]map[string]any
	for range endpoints {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("ren: group fetch: %w", ctx.Err())
		case r := <-results:
			if r.err != nil {
				// One failed request poisons the group; a partial day is
				// not a usable day.
				return nil, fmt.Errorf("ren: group fetch: %w", r.err)
			}
			payloads[r.idx] = r.payload
		}
	}

	return &drepo.DailyPayloads{
		Consumption: payloads[0],
		Production:  payloads[1],
		Prices:      payloads[2],
	}, nil
}

func (c *Client) fetchOne(ctx context.Context, url string) (map[string]any, error) {
	var raw json.RawMessage
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     url,
		Headers: map[string]string{"Accept": "application/json"},
	}, &raw)
	if err != nil {
		return nil, err
	}
	return normalizeEnvelope(raw)
}

// normalizeEnvelope unwraps the upstream response shapes: a bare record, a
// bare sequence, or {data: record|sequence}. The first record is the day's
// baseline; an empty payload yields an empty record so calibrated defaults
// apply downstream.
func normalizeEnvelope(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	switch v := decoded.(type) {
	case map[string]any:
		d, ok := v["data"]
		if !ok {
			return v, nil
		}
		return firstRecord(d), nil
	case []any:
		return firstRecord(v), nil
	default:
		return map[string]any{}, nil
	}
}

func firstRecord(v any) map[string]any {
	switch d := v.(type) {
	case map[string]any:
		return d
	case []any:
		if len(d) > 0 {
			if m, ok := d[0].(map[string]any); ok {
				return m
			}
		}
	}
	return map[string]any{}
}
