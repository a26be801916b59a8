package apiclient

import (
	"net/url"
	"time"

	"github.com/rs/zerolog"

	relayhttp "github.com/Anshumanformal/apirelay/internal/http"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithToken attaches a static bearer credential as a default header on
// every outgoing request. An empty token leaves the client unauthenticated.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.headers["Authorization"] = "Bearer " + token
		}
	}
}

// WithTimeout overrides the fixed per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithDefaultHeader adds a header sent on every request.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(hc relayhttp.HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger routes failure diagnostics to the given logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// CallOption adjusts a single call on top of the client defaults.
type CallOption func(*callConfig)

type callConfig struct {
	headers map[string]string
	query   url.Values
	timeout time.Duration
}

// WithHeader sets a header for this call only, overriding a default header
// with the same key.
func WithHeader(key, value string) CallOption {
	return func(cfg *callConfig) {
		if cfg.headers == nil {
			cfg.headers = make(map[string]string)
		}
		cfg.headers[key] = value
	}
}

// WithQuery appends a query parameter to the request URL.
func WithQuery(key, value string) CallOption {
	return func(cfg *callConfig) {
		if cfg.query == nil {
			cfg.query = make(url.Values)
		}
		cfg.query.Add(key, value)
	}
}

// WithCallTimeout overrides the client timeout for this call only.
func WithCallTimeout(d time.Duration) CallOption {
	return func(cfg *callConfig) {
		if d > 0 {
			cfg.timeout = d
		}
	}
}
