// Package domain defines the core types shared across the content
// generation service.
package domain

import "encoding/json"

// ContentRecord is the stored unit of generated content.
type ContentRecord struct {
	ID      int64  `json:"id"`
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

// GenerateRequest is the request body for content generation.
type GenerateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// GenerateResponse is the response body for a successful generation.
type GenerateResponse struct {
	Content string `json:"content"`
	ID      int64  `json:"id"`
}

// SubmitRequest is the request body for content submission.
// The identifier is not validated at binding time: any id the store never
// produced, zero included, answers with not-found.
type SubmitRequest struct {
	ContentID int64 `json:"content_id"`
}

// SubmitResponse is the response body for a successful submission.
type SubmitResponse struct {
	Detail  string        `json:"detail"`
	Content ContentRecord `json:"content"`
}

// SearchRequest is the request body for a web search.
type SearchRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// SearchResponse wraps the raw provider results.
// Results are opaque provider records passed through unmodified.
type SearchResponse struct {
	Results []json.RawMessage `json:"results"`
}
