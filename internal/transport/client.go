// Package transport provides the authenticated HTTP client used to talk
// to the remote catalog API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/prowebkong/woosync/pkg/constants"
	"github.com/prowebkong/woosync/pkg/errors"
	"github.com/prowebkong/woosync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
		auth: auth,
	}
}

// WithHTTPClient replaces the underlying http.Client, e.g. to change the
// request timeout.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

// Do performs an HTTP request with authentication and common headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.auth.Apply(req)

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIO("create request for", url, err)
	}
	return c.Do(req)
}

// PostJSON performs a POST request with a JSON-encoded body.
func (c *Client) PostJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	return c.sendJSON(ctx, http.MethodPost, url, body)
}

// PutJSON performs a PUT request with a JSON-encoded body.
func (c *Client) PutJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	return c.sendJSON(ctx, http.MethodPut, url, body)
}

func (c *Client) sendJSON(ctx context.Context, method, url string, body any) (*http.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", "request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.WrapIO("create request for", url, err)
	}
	return c.Do(req)
}

// DecodeResponse decodes a JSON response into the target structure. A
// non-2xx status is returned as an *errors.APIError carrying the raw body
// so callers can inspect structured error payloads.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errors.APIError{
			Endpoint:   resp.Request.URL.Path,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
