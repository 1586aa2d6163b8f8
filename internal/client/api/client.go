package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/treystu/bmsview-sync/internal/models"
	"github.com/treystu/bmsview-sync/pkg/api"
)

// DefaultTimeout bounds every remote call so a hung endpoint cannot stall
// a sync cycle past the next tick.
const DefaultTimeout = 30 * time.Second

// Client is the HTTP client for the Remote Sync API: metadata,
// incremental-pull and batch-push endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewClient creates a new sync API client. A non-positive timeout falls back
// to DefaultTimeout.
func NewClient(baseURL, authToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Metadata fetches collection metadata and the server clock.
func (c *Client) Metadata(ctx context.Context, collection string) (*api.MetadataResponse, error) {
	var resp api.MetadataResponse
	path := fmt.Sprintf("/api/v1/sync/%s/metadata", url.PathEscape(collection))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	return &resp, nil
}

// Changes fetches incremental changes since the given watermark. A zero
// since requests the full collection.
func (c *Client) Changes(ctx context.Context, collection string, since time.Time) (*api.ChangesResponse, error) {
	var resp api.ChangesResponse
	path := fmt.Sprintf("/api/v1/sync/%s/changes", url.PathEscape(collection))
	if !since.IsZero() {
		path += "?since=" + url.QueryEscape(since.UTC().Format(models.TimeLayout))
	}
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("changes request failed: %w", err)
	}
	return &resp, nil
}

// Push submits one batch of records for a collection. A non-2xx response
// means none of the batch is considered synced.
func (c *Client) Push(ctx context.Context, collection string, items []api.Record) (*api.PushResponse, error) {
	var resp api.PushResponse
	path := fmt.Sprintf("/api/v1/sync/%s/push", url.PathEscape(collection))
	if err := c.doRequest(ctx, http.MethodPost, path, api.PushRequest{Items: items}, &resp); err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	return &resp, nil
}

// doRequest performs one HTTP round trip with JSON encoding on both sides.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
