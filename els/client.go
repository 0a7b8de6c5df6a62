// Package els provides a client for the Elsevier (Scopus) retrieval API
// at api.elsevier.com.
package els

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Version is the library version reported in the User-Agent header.
const Version = "0.2.0"

const (
	// BaseURL is the api.elsevier.com base URL.
	BaseURL = "https://api.elsevier.com/"

	// MinInterval is the minimum spacing between consecutive requests,
	// per Elsevier's rate policy.
	MinInterval = time.Second

	// PageSize is the number of records the API returns per request.
	PageSize = 25

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// userAgent identifies the library to Elsevier for usage tracking.
	userAgent = "elsago/" + Version

	// maxErrorBody caps how much of an error response body is retained.
	maxErrorBody = 64 * 1024
)

// Client is a throttled HTTP client for api.elsevier.com. It holds the
// request credentials and enforces MinInterval between consecutive
// requests. The throttle blocks the caller; requests are meant to be
// issued serially, and the credential fields are not synchronized for
// concurrent mutation.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	instToken  string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithInstToken sets the institutional token sent on each request.
func WithInstToken(token string) Option {
	return func(c *Client) {
		c.instToken = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithMinInterval overrides the request spacing (for testing).
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewClient creates a client authenticating with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(MinInterval), 1),
		apiKey:     apiKey,
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the API base URL the client is configured for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetInstToken replaces the institutional token used on subsequent requests.
func (c *Client) SetInstToken(token string) {
	c.instToken = token
}

// ExecRequest performs a throttled GET against uri and decodes the JSON
// response body into a generic mapping. Non-200 responses are returned
// as *HTTPError carrying the status code and raw body. Requests are
// never retried.
func (c *Client) ExecRequest(ctx context.Context, uri string) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-ELS-APIKey", c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.instToken != "" {
		req.Header.Set("X-ELS-Insttoken", c.instToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        uri,
			Body:       string(body),
		}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding body from %s: %v", ErrMalformedResponse, uri, err)
	}

	return payload, nil
}
