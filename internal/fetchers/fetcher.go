package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"omnigrid/internal/models"

	"github.com/go-resty/resty/v2"
)

// DataFetcher fetches tabular records and metrics from the omni-grid API
type DataFetcher struct {
	client        *resty.Client
	baseURL       string
	healthTimeout time.Duration
}

// NewDataFetcher creates a new data fetcher for the given base URL
func NewDataFetcher(baseURL string, requestTimeout, healthTimeout time.Duration) *DataFetcher {
	client := resty.New()
	client.SetTimeout(requestTimeout)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)
	client.SetHeader("User-Agent", "OmniGrid-Analytics-Tool/1.0")

	return &DataFetcher{
		client:        client,
		baseURL:       strings.TrimRight(baseURL, "/"),
		healthTimeout: healthTimeout,
	}
}

// Fetch performs a GET request against an endpoint and decodes the JSON
// body. The endpoint may be empty (root) and params may be nil.
func (f *DataFetcher) Fetch(ctx context.Context, endpoint string, params map[string]string) (any, error) {
	url := f.baseURL
	if endpoint != "" {
		url = f.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	}

	req := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("omni-grid API returned status %d for %s", resp.StatusCode(), url)
	}

	var body any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return body, nil
}

// FetchGridRecords fetches the grid endpoint and shapes the body into
// records. A JSON array maps row by row; an object with a "data" array is
// unwrapped; any other object becomes a single-row set.
func (f *DataFetcher) FetchGridRecords(ctx context.Context, endpoint string) ([]models.Record, error) {
	body, err := f.Fetch(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	switch v := body.(type) {
	case []any:
		return toRecords(v)
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			return toRecords(data)
		}
		return []models.Record{models.Record(v)}, nil
	default:
		return nil, fmt.Errorf("unexpected grid response shape %T", body)
	}
}

// FetchMetrics fetches the metrics endpoint
func (f *DataFetcher) FetchMetrics(ctx context.Context, endpoint string) (*models.Metrics, error) {
	body, err := f.Fetch(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode metrics body: %w", err)
	}
	var metrics models.Metrics
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("failed to parse metrics response: %w", err)
	}
	return &metrics, nil
}

// HealthCheck reports whether the API base URL answers 200 within the
// health deadline. Any error counts as unhealthy.
func (f *DataFetcher) HealthCheck(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, f.healthTimeout)
	defer cancel()

	resp, err := f.client.R().SetContext(checkCtx).Get(f.baseURL)
	if err != nil {
		return false
	}
	return resp.StatusCode() == 200
}

func toRecords(rows []any) ([]models.Record, error) {
	records := make([]models.Record, 0, len(rows))
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("grid row %d is %T, expected object", i, row)
		}
		records = append(records, models.Record(obj))
	}
	return records, nil
}
