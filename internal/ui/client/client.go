// the client package is used by the ui views to call the ecosort backend API.
// Each exported method issues exactly one GET request below the /api base path and returns the decoded data.
// Failures are returned to the caller unchanged as a *ClientError (see client/errors.go): nothing is retried or cached here.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	// BasePath is prefixed to every backend endpoint
	BasePath = "/api"

	// DefaultTimeout bounds each request, including reading the response body
	DefaultTimeout = 10 * time.Second

	RequestIDHeader = "X-Request-ID"
)

// Client handles communication with the ecosort API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithTimeout replaces the default 10 second request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTransport sets the round tripper used for requests, e.g. an instrumented transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient creates a client for the API served at origin (scheme and host, e.g. http://localhost:5000).
func NewClient(origin string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(origin, "/") + BasePath,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the origin plus base path that endpoint paths are appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// envelope is the response wrapper used by every backend endpoint
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// get sends a GET for path (relative to the base path) and decodes the response body into out.
// path is used as given: callers interpolate their arguments without escaping.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return NewClientInternalError(err, "creating request for "+path)
	}

	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID(ctx))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return NewClientConnectionError(err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return NewClientApiError(res)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		// the timeout also covers reading the body
		if isTimeout(err) {
			return NewClientTimeoutError(err)
		}
		return NewClientInternalError(err, "decoding response from "+path)
	}
	return nil
}

// requestID forwards the id of the page request being served, if there is one
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
