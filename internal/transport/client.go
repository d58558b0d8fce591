// Package transport is the HTTP layer shared by tracker adapters: it applies
// authentication, spaces requests with a token bucket and turns non-success
// responses into typed API errors. It never retries.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// UserAgent is sent with every request.
const UserAgent = "beadsync"

// Client provides HTTP client functionality with authentication.
type Client struct {
	source  string
	http    *http.Client
	auth    Authenticator
	secret  string
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit sets the sustained requests per minute and burst size. A
// non-positive perMinute disables limiting.
func WithRateLimit(perMinute, burst int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60), max(burst, 1))
	}
}

// New creates a transport client for source that authenticates with auth
// and secret.
func New(source string, auth Authenticator, secret string, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		source:  source,
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    auth,
		secret:  secret,
		limiter: rate.NewLimiter(rate.Limit(float64(constants.DefaultRateLimit)/60), constants.BurstSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the tracker name used in errors.
func (c *Client) Source() string {
	return c.source
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &errors.APIError{Source: c.source, Endpoint: req.URL.String(), Message: "rate limiter wait canceled", Err: err}
		}
	}

	c.auth.Apply(req, c.secret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &errors.APIError{
			Source:   c.source,
			Endpoint: req.URL.Redacted(),
			Message:  "request failed",
			Err:      err,
		}
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errors.APIError{Source: c.source, Endpoint: url, Message: "invalid request", Err: err}
	}
	return c.Do(ctx, req)
}

// PostJSON marshals body and POSTs it.
func (c *Client) PostJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", "request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &errors.APIError{Source: c.source, Endpoint: url, Message: "invalid request", Err: err}
	}
	return c.Do(ctx, req)
}

// GetJSON performs a GET request and decodes the JSON response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) (*http.Response, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return resp, DecodeResponse(resp, c.source, target)
}
