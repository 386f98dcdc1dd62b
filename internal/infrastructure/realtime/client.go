package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopvoice/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client mints short-lived realtime client secrets. The browser widget uses
// the secret to open its own WebRTC session with the speech API; the server
// never touches audio.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// clientSecretResponse mirrors the relevant slice of the upstream response:
// { "client_secret": { "value": "ek_...", "expires_at": ... }, ... }
type clientSecretResponse struct {
	ClientSecret struct {
		Value     string `json:"value"`
		ExpiresAt int64  `json:"expires_at"`
	} `json:"client_secret"`
}

// NewClient creates a new realtime credential client.
func NewClient(apiKey, baseURL string) *Client {
	// Secrets are minted once per voice session; keep the outbound rate modest.
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// MintClientSecret requests a fresh ephemeral secret and returns its value.
func (c *Client) MintClientSecret(ctx context.Context) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: missing API key", domain.ErrRealtimeAPIFailure)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	// Session defaults stay minimal; the widget updates the session itself.
	payload := []byte(`{"session":{}}`)
	endpoint := fmt.Sprintf("%s/v1/realtime/client_secrets", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRealtimeAPIFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[REALTIME] Mint failed - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrRealtimeAPIFailure, resp.StatusCode)
	}

	var secret clientSecretResponse
	if err := json.Unmarshal(body, &secret); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if secret.ClientSecret.Value == "" {
		return "", fmt.Errorf("%w: no client_secret.value in response", domain.ErrRealtimeAPIFailure)
	}

	if c.debug {
		log.Printf("[REALTIME] Minted client secret (expires_at: %d)", secret.ClientSecret.ExpiresAt)
	}

	return secret.ClientSecret.Value, nil
}
