package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public YGOPRODeck API root.
	DefaultBaseURL = "https://db.ygoprodeck.com/api/v7"

	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client is an HTTP client for the card catalog API with rate limiting
// and retry logic.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a new catalog API client. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// 1 request per 100ms = 10 req/sec
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "ygo-companion/1.0",
	}
}

// envelope is the JSON wrapper the catalog API returns.
type envelope struct {
	Data []Card `json:"data"`
}

// FetchAllCards retrieves the full card catalog in one call.
func (c *Client) FetchAllCards(ctx context.Context) ([]Card, error) {
	url := fmt.Sprintf("%s/cardinfo.php", c.baseURL)

	var env envelope
	if err := c.doRequest(ctx, url, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch card catalog: %w", err)
	}

	return env.Data, nil
}

// doRequest performs a GET with rate limiting and retry with
// exponential backoff on 429 and 5xx responses.
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			if !c.sleepBackoff(ctx, &backoff) {
				return ctx.Err()
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		closeErr := resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("failed to read response body: %w", readErr)
			}
			if closeErr != nil {
				return fmt.Errorf("failed to close response body: %w", closeErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
			if !c.sleepBackoff(ctx, &backoff) {
				return ctx.Err()
			}
			continue

		default:
			return fmt.Errorf("server returned status %d", resp.StatusCode)
		}
	}

	return fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// sleepBackoff waits for the current backoff interval, doubling it up
// to maxBackoff. Returns false if the context was cancelled.
func (c *Client) sleepBackoff(ctx context.Context, backoff *time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(*backoff):
	}
	*backoff *= 2
	if *backoff > maxBackoff {
		*backoff = maxBackoff
	}
	return true
}
