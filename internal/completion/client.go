// Package completion implements the HTTP client for the external text
// completion provider.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jhaShwet/content-generation/internal/config"
	"github.com/jhaShwet/content-generation/internal/domain"
)

const (
	promptTemplate = "Generate content based on the topic: %s"

	// maxErrorBodyBytes caps how much of a provider error body is kept
	// for diagnostics.
	maxErrorBodyBytes = 512
)

// ErrUnavailable indicates the completion provider is unreachable.
var ErrUnavailable = errors.New("completion provider unavailable")

// ProviderError indicates a non-success status from the provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("completion provider returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("completion provider returned %d", e.StatusCode)
}

// Client is an HTTP client for the completion provider.
type Client struct {
	cfg        config.CompletionConfig
	httpClient *http.Client
}

// completeRequest is the request body for the completion endpoint.
type completeRequest struct {
	Prompt     string `json:"prompt"`
	NumResults int    `json:"numResults"`
	MaxTokens  int    `json:"maxTokens"`
}

// completeResponse is the response body from the completion endpoint.
type completeResponse struct {
	Completions []struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
	} `json:"completions"`
}

// NewClient creates a new completion client. The configured timeout bounds
// every request; there are no retries.
func NewClient(cfg config.CompletionConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Generate requests one completion for the topic and returns the generated
// text with surrounding whitespace trimmed.
//
// Returns domain.ErrMissingAPIKey before any network I/O when the credential
// is not configured, ErrUnavailable on transport failure, a *ProviderError
// on a non-success status, domain.ErrNoCompletions when the provider returns
// an empty completions list, and domain.ErrEmptyCompletion when the text is
// empty after trimming.
func (c *Client) Generate(ctx context.Context, topic string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	reqBody, err := json.Marshal(completeRequest{
		Prompt:     fmt.Sprintf(promptTemplate, topic),
		NumResults: c.cfg.NumResults,
		MaxTokens:  c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", &ProviderError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var result completeResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	if len(result.Completions) == 0 {
		return "", domain.ErrNoCompletions
	}

	text := strings.TrimSpace(result.Completions[0].Data.Text)
	if text == "" {
		return "", domain.ErrEmptyCompletion
	}

	return text, nil
}
