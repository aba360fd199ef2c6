// Package recommend calls the external deck auto-complete service.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

// Request carries the current zone contents, card ids only.
type Request struct {
	Main  []int `json:"main"`
	Extra []int `json:"extra"`
	Side  []int `json:"side"`
}

// Response carries the replacement zones. The shape is treated as
// authoritative: callers bulk-replace deck state from it without
// validation.
type Response struct {
	Main  []int `json:"main"`
	Extra []int `json:"extra"`
	Side  []int `json:"side"`
}

// Client posts the current deck zones to the recommendation endpoint
// and returns the completed zones.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a recommendation client for the given endpoint
// URL.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Complete requests replacement zones for the given deck contents.
func (c *Client) Complete(ctx context.Context, req *Request) (*Response, error) {
	if c.url == "" {
		return nil, fmt.Errorf("no recommendation endpoint configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("recommendation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendation server returned status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation response: %w", err)
	}

	return &out, nil
}
