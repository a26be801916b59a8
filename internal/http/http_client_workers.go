//go:build js && wasm

package http

import (
	"net/http"

	"github.com/syumai/workers/cloudflare/fetch"
)

// workersHTTPClient implements HTTPClient on top of the Workers fetch API.
type workersHTTPClient struct {
	client *fetch.Client
}

// NewHTTPClient creates the HTTP client used in the Workers environment
func NewHTTPClient() HTTPClient {
	return &workersHTTPClient{client: fetch.NewClient()}
}

// Do performs an HTTP request via Cloudflare Workers fetch
func (c *workersHTTPClient) Do(req *http.Request) (*http.Response, error) {
	fetchReq, err := fetch.NewRequest(req.Context(), req.Method, req.URL.String(), req.Body)
	if err != nil {
		return nil, err
	}
	for key, values := range req.Header {
		for _, value := range values {
			fetchReq.Header.Add(key, value)
		}
	}
	return c.client.Do(fetchReq, nil)
}
