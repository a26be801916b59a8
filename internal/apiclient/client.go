package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	relayhttp "github.com/Anshumanformal/apirelay/internal/http"
	"github.com/Anshumanformal/apirelay/internal/logger"
)

// DefaultTimeout bounds every call unless overridden at construction or
// per call.
const DefaultTimeout = 10 * time.Second

// Client is an API client bound to one remote endpoint. Its configuration
// is fixed at construction and safe to share across goroutines; each call
// is issued exactly once, with no retries.
type Client struct {
	endpoint   string
	timeout    time.Duration
	headers    map[string]string
	httpClient relayhttp.HTTPClient
	log        zerolog.Logger
}

// New creates a client for the given base endpoint URL. The endpoint is
// required and must be an absolute http or https URL.
func New(endpoint string, opts ...Option) (*Client, error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}

	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		timeout:  DefaultTimeout,
		headers:  map[string]string{"Content-Type": "application/json"},
		log:      *logger.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = relayhttp.NewHTTPClient()
	}

	return c, nil
}

// Get issues a GET request for the given path.
func (c *Client) Get(ctx context.Context, path string, opts ...CallOption) *Result {
	return c.call(ctx, http.MethodGet, path, nil, opts)
}

// Post issues a POST request with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...CallOption) *Result {
	return c.call(ctx, http.MethodPost, path, body, opts)
}

// Put issues a PUT request with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...CallOption) *Result {
	return c.call(ctx, http.MethodPut, path, body, opts)
}

// Patch issues a PATCH request with a JSON-encoded body.
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...CallOption) *Result {
	return c.call(ctx, http.MethodPatch, path, body, opts)
}

// Delete issues a DELETE request for the given path.
func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) *Result {
	return c.call(ctx, http.MethodDelete, path, nil, opts)
}

// call runs one request through the full lifecycle: build, send, read,
// classify. All failures are converted into the returned Result; the
// diagnostic logging on the way is best-effort and never alters it.
func (c *Client) call(ctx context.Context, method, path string, body any, opts []CallOption) *Result {
	cfg := callConfig{timeout: c.timeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, method, path, body, &cfg)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("Request setup failed")
		return localFailure(err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("url", req.URL.String()).Msg("No response received")
		return localFailure(err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("url", req.URL.String()).Msg("Could not read response body")
		return &Result{StatusCode: resp.StatusCode, Error: err.Error()}
	}

	// 2xx and 3xx count as success; redirects are already followed by the
	// underlying client. A 1xx surfacing as the final status is not a
	// terminal response and counts as failure.
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusBadRequest {
		return successResult(resp.StatusCode, respBody)
	}

	c.log.Error().
		Int("status", resp.StatusCode).
		Str("method", method).
		Str("url", req.URL.String()).
		Str("body", string(respBody)).
		Msg("API responded with an error status")
	return remoteFailure(resp.StatusCode, respBody)
}

func (c *Client) buildRequest(ctx context.Context, method, path string, body any, cfg *callConfig) (*http.Request, error) {
	u, err := c.resolveURL(path, cfg.query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range cfg.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// resolveURL joins the fixed endpoint with a call path and optional query
// parameters.
func (c *Client) resolveURL(path string, query neturl.Values) (string, error) {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u, err := neturl.Parse(c.endpoint + path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", path, err)
	}

	if len(query) > 0 {
		q := u.Query()
		for k, values := range query {
			for _, v := range values {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := neturl.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported endpoint scheme %q (only http and https are allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint must have a host")
	}
	return nil
}
