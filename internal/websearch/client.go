// Package websearch implements the HTTP client for the external web-search
// provider. Results are provider-defined records passed through unmodified.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhaShwet/content-generation/internal/config"
)

// Client is an HTTP client for the search provider.
type Client struct {
	cfg        config.SearchConfig
	httpClient *http.Client
}

// searchResponse captures only the result list from the provider response.
// Individual results stay raw so the caller receives them as sent.
type searchResponse struct {
	RelatedTopics []json.RawMessage `json:"RelatedTopics"`
}

// NewClient creates a new search client.
func NewClient(cfg config.SearchConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Search issues one query to the provider and returns its result list
// unmodified. Any failure is reported as a single wrapped error; there is
// no partial-result recovery.
func (c *Client) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed: provider returned %d", resp.StatusCode)
	}

	var result searchResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return nil, fmt.Errorf("search request failed: %w", decodeErr)
	}

	if result.RelatedTopics == nil {
		return []json.RawMessage{}, nil
	}
	return result.RelatedTopics, nil
}
