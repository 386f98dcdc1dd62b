package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/shopvoice/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client fetches the catalog CSV export over HTTP.
type Client struct {
	httpClient  *http.Client
	sourceURL   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog feed client.
func NewClient(sourceURL string) *Client {
	// The feed is fetched once per session plus the occasional forced
	// reload; 1 req/sec with a small burst is plenty.
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sourceURL:   sourceURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchCatalog retrieves the raw CSV text. bustCache appends a timestamp
// query parameter so intermediaries cannot serve a stale copy.
func (c *Client) FetchCatalog(ctx context.Context, bustCache bool) (string, error) {
	reqURL := c.sourceURL
	if bustCache {
		sep := "?"
		if u, err := url.Parse(c.sourceURL); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		reqURL = fmt.Sprintf("%s%s_=%d", c.sourceURL, sep, time.Now().UnixNano())
	}

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, reqURL)
		if err == nil {
			if c.debug {
				log.Printf("[FEED] Fetched %d bytes from %s", len(body), c.sourceURL)
			}
			return body, nil
		}

		if c.debug {
			log.Printf("[FEED] Fetch error (attempt %d): %v", attempt, err)
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(exponentialBackoff(attempt)):
		}
	}

	return "", lastErr
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShopVoice/1.0")
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}

	return string(body), nil
}

// exponentialBackoff returns the sleep before the next retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}
