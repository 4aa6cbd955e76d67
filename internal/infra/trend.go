package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// TrendObservation is one monthly data point from the external retail index
// API (HUI-style monthly index feed).
type TrendObservation struct {
	Month      string          `json:"month"` // "YYYY-MM"
	IndexValue decimal.Decimal `json:"index"`
	Source     string          `json:"source"`
}

// TrendClient polls the external trend API. All calls go through the circuit
// breaker owned by the trend worker, so a downed feed never blocks requests.
type TrendClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTrendClient(baseURL string) *TrendClient {
	return &TrendClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// LatestObservations fetches the most recent monthly index values,
// newest first.
func (c *TrendClient) LatestObservations(ctx context.Context) ([]TrendObservation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/retail-index/latest", nil)
	if err != nil {
		return nil, fmt.Errorf("trend: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trend: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trend: api returned %d", resp.StatusCode)
	}

	var payload struct {
		Observations []TrendObservation `json:"observations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("trend: decode response: %w", err)
	}
	return payload.Observations, nil
}
