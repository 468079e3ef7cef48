package nomis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"incidentapi/internal/config"
)

// ErrIncidentNotFound is returned when NOMIS has no incident with the requested ID.
var ErrIncidentNotFound = errors.New("nomis incident not found")

// Client reads incidents from the NOMIS prison API.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a NOMIS API client whose transport is traced with OpenTelemetry.
func NewClient(cfg config.NomisConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("nomis api url is required")
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// GetIncident fetches a single incident by its NOMIS ID.
func (c *Client) GetIncident(ctx context.Context, incidentID int64) (*IncidentResponse, error) {
	url := fmt.Sprintf("%s/incidents/%d", c.baseURL, incidentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get incident %d: %w", incidentID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrIncidentNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("get incident %d: unexpected status %d: %s", incidentID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out IncidentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode incident %d: %w", incidentID, err)
	}
	return &out, nil
}
