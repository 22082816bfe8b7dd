package quality

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hydrowatch/hydrowatch/internal/observability"
)

// Client wraps interactions with the external inference service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewClient constructs a new client. metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
	}
}

// wireReading mirrors the inference service's response keys verbatim.
type wireReading struct {
	TSS         float64 `json:"TSS mg/L"`
	Turbidity   float64 `json:"Turbidity NTU"`
	Chlorophyll float64 `json:"Chlorophyll ug/L"`
	NDVI        float64 `json:"NDVI"`
	NDWI        float64 `json:"NDWI"`
	Date        string  `json:"date"`
}

func (w wireReading) reading() Reading {
	return Reading{
		Date:        w.Date,
		Turbidity:   w.Turbidity,
		TSS:         w.TSS,
		Chlorophyll: w.Chlorophyll,
		NDVI:        w.NDVI,
		NDWI:        w.NDWI,
	}
}

type predictRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	StartDate   string      `json:"start_date,omitempty"`
	EndDate     string      `json:"end_date,omitempty"`
}

type predictResponse struct {
	Predictions []wireReading `json:"predictions"`
}

// Predict fetches time-indexed readings for a polygon over a date range.
func (c *Client) Predict(ctx context.Context, coordinates [][]float64, start, end time.Time) ([]Reading, error) {
	payload := predictRequest{
		Coordinates: coordinates,
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
	}
	var decoded predictResponse
	if err := c.post(ctx, "/predict", payload, &decoded); err != nil {
		return nil, err
	}
	readings := make([]Reading, len(decoded.Predictions))
	for i, item := range decoded.Predictions {
		readings[i] = item.reading()
	}
	return readings, nil
}

// Current fetches the most recent reading for a polygon.
func (c *Client) Current(ctx context.Context, coordinates [][]float64) (Reading, error) {
	var decoded wireReading
	if err := c.post(ctx, "/currdate", predictRequest{Coordinates: coordinates}, &decoded); err != nil {
		return Reading{}, err
	}
	return decoded.reading(), nil
}

func (c *Client) post(ctx context.Context, path string, payload, dest any) (err error) {
	defer func() {
		c.metrics.ObserveInferenceCall(path, err)
	}()
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("quality: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("quality: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("quality: call inference: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("quality: inference returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("quality: decode response: %w", err)
	}
	return nil
}
