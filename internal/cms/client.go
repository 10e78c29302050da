// Package cms is the outbound client for the headless CMS backend that
// owns the product catalog, inventory and provider collections.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"autoparts-storefront-api/internal/catalog"
)

const defaultTimeout = 10 * time.Second

// Config holds client settings. Token is the CMS API bearer token and must
// come from configuration; it is never embedded in source.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client is a typed HTTP client for the CMS API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	baseHost   string
	token      string
}

// New creates a CMS client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		baseHost:   strings.TrimSuffix(baseURL, "/api"),
		token:      cfg.Token,
	}
}

// BaseHost returns the CMS host with the /api suffix stripped. Media URLs
// returned by the CMS are relative to this host.
func (c *Client) BaseHost() string {
	return c.baseHost
}

// StatusError is a non-2xx response from the CMS.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cms: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("cms: status %d", e.StatusCode)
}

// GetList fetches a collection endpoint and unwraps whatever list envelope
// the CMS responds with.
func (c *Client) GetList(ctx context.Context, path string, query url.Values) ([]catalog.Entry, error) {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return UnwrapList(raw), nil
}

// GetEntity fetches a single-entity endpoint and unwraps the object
// envelope.
func (c *Client) GetEntity(ctx context.Context, path string, query url.Values) (catalog.Entry, error) {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return UnwrapEntity(raw), nil
}

// PostEntity creates an entity and returns the created object, unwrapped.
func (c *Client) PostEntity(ctx context.Context, path string, body interface{}) (catalog.Entry, error) {
	raw, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	return UnwrapEntity(raw), nil
}

// PutEntity updates an entity and returns the updated object, unwrapped.
func (c *Client) PutEntity(ctx context.Context, path string, body interface{}) (catalog.Entry, error) {
	raw, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return nil, err
	}
	return UnwrapEntity(raw), nil
}

// Post performs a POST and returns the raw response body. Used for
// endpoints with a contract of their own, like local auth.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Delete removes an entity.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("cms: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cms: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	return raw, nil
}

// errorMessage pulls the human-readable message out of a CMS error body:
// {"error":{"message":...}} or {"message":...}.
func errorMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error.Message != "" {
		return body.Error.Message
	}
	return body.Message
}
