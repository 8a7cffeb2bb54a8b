// Package mobula is a minimal client for the Mobula token-details API.
package mobula

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.mobula.io/api/2/token/details"
	DefaultTimeout = 10 * time.Second

	// Blockchain is the chain every query is scoped to.
	Blockchain = "solana"
)

// HTTPError is returned for non-2xx API responses.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("mobula API status %d: %s", e.StatusCode, e.Body)
}

// Client fetches token details over HTTP. One GET per address, no retries;
// callers record failures and move on.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new Mobula API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TokenDetails fetches the details payload for one address. The body is
// returned verbatim on any 2xx status. Non-2xx statuses return *HTTPError;
// anything below HTTP (DNS, connect, timeout) returns the wrapped transport
// error.
func (c *Client) TokenDetails(ctx context.Context, address string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("blockchain", Blockchain)
	q.Set("address", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON response for %s", address)
	}

	return json.RawMessage(body), nil
}
