// Package spotify is the catalog adapter. It speaks the Spotify Web API
// directly and maps wire payloads to domain types; token-rejection responses
// become domain.ErrReauthRequired so callers can prompt a re-login.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

// DefaultBaseURL is the production Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

const requestTimeout = 15 * time.Second

// Client is an HTTP client for the catalog adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

// compile-time interface assertion
var _ ports.Catalog = (*Client)(nil)

// NewClient constructs a catalog client. A nil httpClient gets a retrying
// default (429/5xx/network only; auth failures are never retried).
func NewClient(httpClient *http.Client, baseURL string, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = NewRetryingHTTPClient()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// NewRetryingHTTPClient builds the standard retrying transport. Retry-After
// on 429 responses is honored by the underlying policy.
func NewRetryingHTTPClient() *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient.Timeout = requestTimeout
	return rc.StandardClient()
}

// doJSON issues a bearer-authorized request and decodes a 2xx response into
// out (when out is non-nil). Non-2xx statuses are returned unconsumed for the
// caller to classify.
func (c *Client) doJSON(ctx context.Context, token, method, url string, body io.Reader, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, fmt.Errorf("spotify adapter: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("spotify adapter: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, nil
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("spotify adapter: decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// statusError classifies a non-2xx response.
func statusError(op string, status int) error {
	if status == http.StatusUnauthorized {
		return fmt.Errorf("spotify adapter: %s: %w", op, domain.ErrReauthRequired)
	}
	return fmt.Errorf("spotify adapter: %s: status %d", op, status)
}
